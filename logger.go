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

package rotalog

import (
	"context"
	"runtime"
	"time"

	acontext "dirpx.dev/rotalog/apis/context"
	"dirpx.dev/rotalog/apis/field"
	"dirpx.dev/rotalog/apis/level"
	"dirpx.dev/rotalog/apis/record"
	asink "dirpx.dev/rotalog/apis/sink"
)

// Logger adapts a single rotating file Sink to apis.Logger. It applies the
// severity gate and the canonical wire format before handing bytes to the
// sink: the sink itself never sees a Record, only already-formatted bytes.
type Logger struct {
	sink      asink.Sink
	threshold level.Level
	target    string
	extractor acontext.Extractor
}

func newLogger(s asink.Sink, threshold level.Level, target string) *Logger {
	return &Logger{
		sink:      s,
		threshold: threshold,
		target:    target,
	}
}

// WithExtractor returns a derived Logger that extracts a context.Pack from
// the ctx passed to each logging call using e, instead of an empty Pack.
func (l *Logger) WithExtractor(e acontext.Extractor) *Logger {
	out := *l
	out.extractor = e
	return &out
}

// Enabled reports whether lvl is admitted by this logger's threshold.
func (l *Logger) Enabled(lvl level.Level) bool {
	return lvl.Admits(l.threshold)
}

// Trace logs a trace-level message.
func (l *Logger) Trace(ctx context.Context, msg string, fields ...field.Field) {
	l.log(ctx, level.Trace, msg, fields, 2)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...field.Field) {
	l.log(ctx, level.Debug, msg, fields, 2)
}

// Info logs an info-level message.
func (l *Logger) Info(ctx context.Context, msg string, fields ...field.Field) {
	l.log(ctx, level.Info, msg, fields, 2)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...field.Field) {
	l.log(ctx, level.Warn, msg, fields, 2)
}

// Error logs an error-level message.
func (l *Logger) Error(ctx context.Context, msg string, fields ...field.Field) {
	l.log(ctx, level.Error, msg, fields, 2)
}

// Log emits a structured log record at lvl.
func (l *Logger) Log(ctx context.Context, lvl level.Level, msg string, fields ...field.Field) {
	l.log(ctx, lvl, msg, fields, 2)
}

// log performs the severity gate, captures the caller's source location,
// formats the record and writes it to the sink. Write errors are not
// propagated to callers: a logging call must never be able to fail the
// caller's own control flow. skip is the number of additional stack frames
// to climb past log itself when resolving the caller location.
func (l *Logger) log(ctx context.Context, lvl level.Level, msg string, fields []field.Field, skip int) {
	if !l.Enabled(lvl) {
		return
	}

	var pack acontext.Pack
	if l.extractor != nil {
		pack = l.extractor.Extract(ctx)
	}

	rec := record.NewRecord(time.Now(), lvl, l.target, msg, pack, fields, nil)
	if file, line, ok := callerLocation(skip + 1); ok {
		rec = rec.WithLocation(file, line)
	}

	_ = l.sink.Write(ctx, []byte(rec.Format()))
}

func callerLocation(skip int) (file string, line int, ok bool) {
	_, file, line, ok = runtime.Caller(skip)
	return file, line, ok
}

// Flush delegates to the underlying sink's Flush.
func (l *Logger) Flush(ctx context.Context) error {
	return l.sink.Flush(ctx)
}
