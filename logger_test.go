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
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/rotalog/apis/level"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		n++
	}
	return n
}

func TestLogger_SeverityGateAdmitsMonotonically(t *testing.T) {
	resetInstalled(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	l, err := NewBuilder().FilePath(path).LogLevel(level.Info).Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	ctx := context.Background()
	l.Debug(ctx, "not admitted")
	l.Info(ctx, "admitted")
	l.Error(ctx, "admitted")

	if got := countLines(t, path); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
}

func TestLogger_EnabledMatchesThreshold(t *testing.T) {
	resetInstalled(t)
	dir := t.TempDir()
	l, err := NewBuilder().
		FilePath(filepath.Join(dir, "output.log")).
		LogLevel(level.Warn).
		Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if l.Enabled(level.Info) {
		t.Fatalf("Info should not be enabled at Warn threshold")
	}
	if !l.Enabled(level.Error) {
		t.Fatalf("Error should be enabled at Warn threshold")
	}
	if !l.Enabled(level.Warn) {
		t.Fatalf("Warn should be enabled at Warn threshold")
	}
}

func TestLogger_FormatIncludesTargetAndLevel(t *testing.T) {
	resetInstalled(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")
	l, err := NewBuilder().
		FilePath(path).
		Target("billing.worker").
		Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	l.Info(context.Background(), "charge processed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := string(data)
	if !bytes.Contains(data, []byte("[billing.worker]")) {
		t.Fatalf("line missing target bracket: %q", line)
	}
	if !bytes.Contains(data, []byte("INFO: charge processed")) {
		t.Fatalf("line missing level/message: %q", line)
	}
}
