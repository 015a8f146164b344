// Copyright 2026 Veldt Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)

// UpsertionError tags a failed write (or a failed local precondition) with
// the store it belongs to. Uploaders never surface a bare error: the tag is
// what the orchestrator uses to decide the compensation direction.
type UpsertionError struct {
	Target Target
	Err    error
}

func (e *UpsertionError) Error() string {
	return fmt.Sprintf("upsertion failed in %s: %v", e.Target, e.Err)
}

func (e *UpsertionError) Unwrap() error {
	return e.Err
}

// NewUpsertionError wraps err as an upsertion failure against target.
func NewUpsertionError(target Target, err error) *UpsertionError {
	return &UpsertionError{Target: target, Err: err}
}

// DeletionError reports that a compensating delete itself failed, leaving an
// orphaned object behind in the tagged store. There is no further recovery
// path; callers must surface it to an operator.
type DeletionError struct {
	Target Target
	Key    string
	Err    error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("compensating delete of %q failed in %s: %v", e.Key, e.Target, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// AggregateError carries the failures of both concurrent uploads, or an
// unexpected failure the orchestrator refused to compensate for.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	if len(e.Errs) == 1 {
		return fmt.Sprintf("upload failed: %v", e.Errs[0])
	}
	return fmt.Sprintf("all uploads failed: %v", errors.Join(e.Errs...))
}

func (e *AggregateError) Unwrap() []error {
	return e.Errs
}
