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
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func seedArtifact(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
		t.Fatalf("seedArtifact WriteFile(%q): %v", name, err)
	}
	mt := time.Now().Add(-age)
	if err := os.Chtimes(p, mt, mt); err != nil {
		t.Fatalf("seedArtifact Chtimes(%q): %v", name, err)
	}
}

func TestPruneByCount_KeepsNewestN(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 6; i++ {
		seedArtifact(t, dir, fmt.Sprintf("output.%d.log", i), time.Duration(6-i)*time.Hour)
	}

	if err := pruneByCount(dir, "output", "log", 3); err != nil {
		t.Fatalf("pruneByCount: %v", err)
	}

	remaining, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(remaining) != 3 {
		t.Fatalf("got %d remaining, want 3", len(remaining))
	}
	// The 3 newest were seeded last (i=3,4,5); oldest (i=0,1,2) must be gone.
	for _, e := range remaining {
		if e.Name() == "output.0.log" || e.Name() == "output.1.log" || e.Name() == "output.2.log" {
			t.Fatalf("expected oldest artifacts pruned, found %q", e.Name())
		}
	}
}

func TestPruneByCount_ZeroDeletesAll(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		seedArtifact(t, dir, fmt.Sprintf("output.%d.log", i), time.Hour)
	}

	if err := pruneByCount(dir, "output", "log", 0); err != nil {
		t.Fatalf("pruneByCount: %v", err)
	}

	remaining, err := listSiblingArtifacts(dir, "output", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("got %d remaining, want 0", len(remaining))
	}
}

func TestPruneByMaxAge_RemovesOlderThanThreshold(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, dir, "max-age.seed-1.log", 1*24*time.Hour)
	seedArtifact(t, dir, "max-age.seed-2.log", 2*24*time.Hour)
	seedArtifact(t, dir, "max-age.seed-4.log", 4*24*time.Hour)
	seedArtifact(t, dir, "max-age.seed-10.log", 10*24*time.Hour)

	if err := pruneByMaxAge(dir, "max-age", "log", 3, time.Now()); err != nil {
		t.Fatalf("pruneByMaxAge: %v", err)
	}

	remaining, err := listSiblingArtifacts(dir, "max-age", "log")
	if err != nil {
		t.Fatalf("listSiblingArtifacts: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("got %d remaining, want 2", len(remaining))
	}
	for _, e := range remaining {
		if e.Name() == "max-age.seed-4.log" || e.Name() == "max-age.seed-10.log" {
			t.Fatalf("expected %q pruned", e.Name())
		}
	}
}
