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


// Package ai defines the embedding gateway consumed by the ingestion
// pipeline.
//
// The pipeline depends only on the Embedder interface; which model vendor
// sits behind it is an implementation detail. Two implementations ship with
// the module:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with call counting
//
// Public constructors in the implementation packages return the Embedder
// interface to keep callers decoupled; mock constructors return concrete
// types so tests can reach assertion helpers.
package ai
