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
	"fmt"

	"github.com/veldtlabs/multirag/core"
)

// MarshalMetadata serializes a catalog record to bytes.
func MarshalMetadata(m core.Metadata) []byte {
	buf := make([]byte, core.MetadataMUS.Size(m))
	core.MetadataMUS.Marshal(m, buf)
	return buf
}

// UnmarshalMetadata deserializes a catalog record from bytes.
func UnmarshalMetadata(data []byte) (core.Metadata, error) {
	m, _, err := core.MetadataMUS.Unmarshal(data)
	if err != nil {
		return core.Metadata{}, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return m, nil
}
