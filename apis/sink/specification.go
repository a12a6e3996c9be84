/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package sink

import (
	"dirpx.dev/rotalog/apis/level"
	"dirpx.dev/rotalog/apis/sink/policy"
)

// Specification is an immutable snapshot of file sink configuration.
//
// It is produced by the builder (see the root rotalog package) and consumed
// by runtime/sink/registry to construct a concrete Sink.
type Specification struct {
	// Name is the unique identifier of the sink.
	Name string

	// Level is the severity threshold: a record is admitted iff its level
	// is less than or equal to this threshold (see apis/level.Admits).
	Level level.Level

	// Path is the active log file path. Parent directories are created as
	// needed.
	Path string

	// Rotation describes when the active file is rolled over.
	Rotation policy.Rotation

	// Retention describes how rolled artifacts are pruned.
	Retention policy.Retention

	// Compress indicates whether rolled artifacts are gzipped.
	Compress bool

	// DelayCompress indicates whether compression of the previous rolled
	// artifact happens one rotation late (see policy.Rotation and §4.4 of
	// the rotation engine).
	DelayCompress bool

	// Labels is an optional set of key/value labels used for diagnostics
	// attribution (for example: {"kind":"file"}).
	Labels map[string]string
}
