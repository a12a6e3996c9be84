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

package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	acontext "dirpx.dev/rotalog/apis/context"
	"dirpx.dev/rotalog/apis/field"
	"dirpx.dev/rotalog/apis/level"
	"dirpx.dev/rotalog/apis/record"
	"dirpx.dev/rotalog/runtime/encoder"
)

func TestEncoder_EncodesFieldsAndMessage(t *testing.T) {
	enc := New(encoder.Options{})
	r := record.NewRecord(
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		level.Warn,
		"billing",
		"charge failed",
		acontext.Empty(),
		[]field.Field{field.New("order_id", "o-1"), field.New("amount", 42)},
		nil,
	)

	var buf bytes.Buffer
	if err := enc.Encode(&r, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("expected trailing newline, got %q", buf.String())
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v, got %q", err, buf.String())
	}
	if decoded["msg"] != "charge failed" {
		t.Fatalf("msg = %v, want %q", decoded["msg"], "charge failed")
	}
	if decoded["order_id"] != "o-1" {
		t.Fatalf("order_id field missing or wrong: %v", decoded["order_id"])
	}
}

func TestEncoder_AppendNewlineFalseStripsTrailingNewline(t *testing.T) {
	f := false
	enc := New(encoder.Options{AppendNewline: &f})
	r := record.NewRecord(time.Now(), level.Info, "t", "hi", acontext.Empty(), nil, nil)

	var buf bytes.Buffer
	if err := enc.Encode(&r, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("expected no trailing newline, got %q", buf.String())
	}
}
