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

// Package record defines the canonical log entry shape used across rotalog.
//
// This package intentionally contains only stable, minimal data structures and
// helper methods. It performs no I/O, buffering, or registry logic.
// Sinks and runtime behavior live outside apis/.
//
// # Record contract
//
// Record is a value type that represents a single log entry. It carries:
//   - Time:    event timestamp
//   - Level:   severity (see apis/level)
//   - Target:  caller-supplied module/category tag
//   - File/Line: optional source location
//   - Message: text message
//   - Ctx:     contextual identity (see apis/context Pack)
//   - Fields:  additional structured fields, consumed only by the optional
//     encoders in runtime/encoder — never by Format
//   - Err:     optional error associated with the event
//
// # Format
//
// Format renders the record as the single text line every file sink writes:
//
//	<ISO8601-UTC-ms> <file>:<line> [<target>] <LEVEL>: <message>\n
//
// This is the one mandatory wire format; it is fixed and not pluggable.
//
// # Immutability & helpers
//
// Record follows an immutable style: helper methods (e.g., WithFields, WithError,
// WithLocation) return a shallow copy with the requested modification, leaving
// the original instance unchanged. Callers must treat returned slices as
// read-only.
//
// # Separation of concerns
//
//   - The mandatory wire line is produced by Record.Format, called by the root
//     rotalog Logger, which hands the bytes to the file sink (see
//     runtime/sink/policy).
//   - Optional structured encoding (console/JSON) is defined by runtime/encoder
//     for callers that want to embed a Record into another transport.
package record
