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

package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/rotalog/apis/context"
	"dirpx.dev/rotalog/apis/field"
	"dirpx.dev/rotalog/apis/level"
)

// Record is the canonical log event shape inside rotalog.
//
// Implementations are free to treat Record as immutable and use copy-on-write
// when callers need to modify fields.
type Record struct {
	// Time is the event time. The rotation engine's wire format always
	// renders it in UTC with millisecond precision; callers may pass a
	// time in any location.
	Time time.Time
	// Level defines the severity.
	Level level.Level
	// Target is the module/category tag the caller attaches to the event,
	// rendered inside brackets in the wire format (e.g. "http.server").
	Target string
	// File and Line carry the caller's source location, if known. Line <= 0
	// means no source location was supplied.
	File string
	Line int
	// Message is the human-readable text.
	Message string
	// Ctx is the well-known, pre-extracted context (trace/correlation/node/...)
	Ctx context.Pack
	// Fields is the structured payload (caller-supplied), used only by the
	// optional structured encoders, never by the mandatory wire format.
	Fields []field.Field
	// Err is the original error, if any.
	Err error
}

// NewRecord builds a Record with the required parts.
// It does NOT perform deep copies of fields; callers should pass owned slices.
func NewRecord(
	t time.Time,
	lvl level.Level,
	target string,
	msg string,
	ctx context.Pack,
	fields []field.Field,
	err error,
) Record {
	return Record{
		Time:    t,
		Level:   lvl,
		Target:  target,
		Message: msg,
		Ctx:     ctx,
		Fields:  fields,
		Err:     err,
	}
}

// Validate checks that the record has a valid level and a non-zero timestamp.
func (r Record) Validate() error {
	if err := r.Level.Validate(); err != nil {
		return fmt.Errorf("rotalog: invalid record level: %w", err)
	}
	if r.Time.IsZero() {
		return fmt.Errorf("rotalog: record time is zero")
	}
	return nil
}

// WithFields returns a shallow copy of the record with additional fields appended.
func (r Record) WithFields(extra ...field.Field) Record {
	if len(extra) == 0 {
		return r
	}
	out := r
	out.Fields = append(append([]field.Field(nil), r.Fields...), extra...)
	return out
}

// WithError returns a shallow copy of the record with a new error attached.
func (r Record) WithError(err error) Record {
	out := r
	out.Err = err
	return out
}

// WithLocation returns a shallow copy of the record with a source location attached.
func (r Record) WithLocation(file string, line int) Record {
	out := r
	out.File = file
	out.Line = line
	return out
}

// timeLayout renders the timestamp as %Y-%m-%dT%H:%M:%S.%3f in UTC, the
// millisecond-precision ISO 8601 form used by the wire format.
const timeLayout = "2006-01-02T15:04:05.000"

// Format renders the record as the single canonical text line:
//
//	<ISO8601-UTC-ms> <file>:<line> [<target>] <LEVEL>: <message>\n
//
// The fields are joined with literal spaces regardless of content, so a
// record with no source location still produces two adjacent spaces before
// the bracketed target. Exactly one trailing newline is produced.
func (r Record) Format() string {
	var fileLine string
	if r.File != "" && r.Line > 0 {
		fileLine = r.File + ":" + strconv.Itoa(r.Line)
	}

	var b strings.Builder
	b.WriteString(r.Time.UTC().Format(timeLayout))
	b.WriteByte(' ')
	b.WriteString(fileLine)
	b.WriteByte(' ')
	b.WriteByte('[')
	b.WriteString(r.Target)
	b.WriteString("] ")
	b.WriteString(strings.ToUpper(r.Level.String()))
	b.WriteString(": ")
	b.WriteString(r.Message)
	b.WriteByte('\n')
	return b.String()
}
