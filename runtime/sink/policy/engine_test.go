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

package policy

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	asink "dirpx.dev/rotalog/apis/sink"
	spolicy "dirpx.dev/rotalog/apis/sink/policy"
)

func TestNewFileSink_EmptyPath(t *testing.T) {
	_, err := NewFileSink(asink.Specification{})
	if err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestFileSink_NoRotation_HundredWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(1 << 30),
		Retention: spolicy.ByCount(5),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		line := fmt.Sprintf("message no: %d\n", i)
		if err := s.Write(ctx, []byte(line)); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 100 {
		t.Fatalf("got %d lines, want 100", len(lines))
	}

	siblings, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(siblings) != 0 {
		t.Fatalf("got %d rolled artifacts, want 0", len(siblings))
	}
}

func TestFileSink_MonotoneSizeCounter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:     path,
		Rotation: spolicy.MaxSizeOnly(1 << 30),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	var want int64
	for i := 0; i < 20; i++ {
		line := []byte(fmt.Sprintf("line %d\n", i))
		if err := s.Write(ctx, line); err != nil {
			t.Fatalf("Write: %v", err)
		}
		want += int64(len(line))
	}

	if s.size != want {
		t.Fatalf("cached size = %d, want %d", s.size, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != want {
		t.Fatalf("on-disk size = %d, want %d", info.Size(), want)
	}
}

func TestFileSink_NoRolloverMode_ByCountZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(10),
		Retention: spolicy.ByCount(0),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		if err := s.Write(ctx, []byte("0123456789\n")); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}

	siblings, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(siblings) != 0 {
		t.Fatalf("got %d rolled artifacts, want 0 under ByCount(0)", len(siblings))
	}
}

func TestFileSink_PostRotationCardinality_ByCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(16),
		Retention: spolicy.ByCount(3),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	for i := 0; i < 200; i++ {
		if err := s.Write(ctx, []byte("0123456789\n")); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
		siblings, err := listSiblingArtifacts(dir, "output", "log")
		if err != nil {
			t.Fatalf("listSiblingArtifacts: %v", err)
		}
		if len(siblings) > 3 {
			t.Fatalf("after write %d: %d sibling artifacts, want <= 3", i, len(siblings))
		}
	}
}

func TestFileSink_ContentPreservation_Uncompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(1),
		Retention: spolicy.ByCount(5),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	if err := s.Write(ctx, []byte("first\n")); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := s.Write(ctx, []byte("second\n")); err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	siblings, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(siblings) != 1 {
		t.Fatalf("got %d rolled artifacts, want 1", len(siblings))
	}

	data, err := os.ReadFile(filepath.Join(dir, siblings[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile rolled artifact: %v", err)
	}
	if string(data) != "first\n" {
		t.Fatalf("rolled artifact content = %q, want %q", data, "first\n")
	}
}

func TestFileSink_ContentPreservation_Compressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(1),
		Retention: spolicy.ByCount(5),
		Compress:  true,
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())

	ctx := context.Background()
	if err := s.Write(ctx, []byte("first\n")); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := s.Write(ctx, []byte("second\n")); err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	siblings, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(siblings) != 1 {
		t.Fatalf("got %d rolled artifacts, want 1", len(siblings))
	}
	if !strings.HasSuffix(siblings[0].Name(), ".gz") {
		t.Fatalf("rolled artifact %q is not gzip-named", siblings[0].Name())
	}

	f, err := os.Open(filepath.Join(dir, siblings[0].Name()))
	if err != nil {
		t.Fatalf("Open rolled artifact: %v", err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("ReadAll gunzip: %v", err)
	}
	if string(data) != "first\n" {
		t.Fatalf("decompressed content = %q, want %q", data, "first\n")
	}
}

func TestFileSink_MaxAgeRetention_PrunesOlderSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "max-age.log")

	now := time.Now()
	seed := func(ageDays int) {
		name := fmt.Sprintf("max-age.seed-%d.log", ageDays)
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("seed WriteFile: %v", err)
		}
		mt := now.Add(-time.Duration(ageDays) * 24 * time.Hour)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}
	seed(1)
	seed(2)
	seed(4)
	seed(10)

	// MaxSizeOnly(1) rotates as soon as the active file holds at least one
	// byte, so the second write below forces the pruner to run.
	s, err := NewFileSink(asink.Specification{
		Path:      path,
		Rotation:  spolicy.MaxSizeOnly(1),
		Retention: spolicy.ByMaxAge(3),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close(context.Background())
	if err := s.Write(context.Background(), []byte("x\n")); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := s.Write(context.Background(), []byte("y\n")); err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	remaining, err := listSiblingArtifacts(dir, "max-age", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	for _, e := range remaining {
		if strings.Contains(e.Name(), "seed-4") || strings.Contains(e.Name(), "seed-10") {
			t.Fatalf("expected seed-4/seed-10 to be pruned, found %q", e.Name())
		}
	}
}

func TestFileSink_Close_RejectsFurtherWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	s, err := NewFileSink(asink.Specification{
		Path:     path,
		Rotation: spolicy.MaxSizeOnly(1 << 30),
	})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("second Close should be idempotent, got %v", err)
	}
	if err := s.Write(context.Background(), []byte("x\n")); err != ErrClosed {
		t.Fatalf("Write after Close = %v, want ErrClosed", err)
	}
}
