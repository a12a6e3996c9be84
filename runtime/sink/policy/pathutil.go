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
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rolledTimestampLayout is the one-second-resolution timestamp embedded in
// rolled artifact names. Collisions within the same second are not
// disambiguated: a second rotation overwrites the first artifact.
const rolledTimestampLayout = "2006-01-02-15:04:05"

// split decomposes path into (dir, stem, ext). ext is the last
// dot-delimited suffix of the basename with the dot removed (empty if the
// basename has no dot); stem is the basename with the trailing ".ext"
// removed; dir is the parent directory, or "" for a bare basename.
func split(path string) (dir, stem, ext string) {
	dir = filepath.Dir(path)
	if dir == "." {
		dir = ""
	}
	base := filepath.Base(path)

	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		stem = base[:idx]
		ext = base[idx+1:]
		return dir, stem, ext
	}
	return dir, base, ""
}

// activePath joins dir with "stem.ext", or just "stem" when ext is empty.
// stem must be non-empty.
func activePath(dir, stem, ext string) string {
	name := stem
	if ext != "" {
		name = stem + "." + ext
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// rolledPath joins dir with "stem.TS.ext" (or "stem.TS" when ext is empty),
// appending ".gz" when compressed is true. TS is now formatted with
// one-second resolution.
func rolledPath(dir, stem, ext string, compressed bool, now time.Time) string {
	ts := now.UTC().Format(rolledTimestampLayout)
	name := stem + "." + ts
	if ext != "" {
		name += "." + ext
	}
	if compressed {
		name += ".gz"
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// isSiblingArtifact reports whether a directory entry is a sibling
// historical artifact of a sink rooted at (stem, ext): a regular file whose
// basename starts with stem, is not the active basename stem.ext, and whose
// extension is either ext or "gz".
func isSiblingArtifact(entry os.DirEntry, stem, ext string) bool {
	if entry.IsDir() {
		return false
	}
	name := entry.Name()
	if !strings.HasPrefix(name, stem) {
		return false
	}
	if name == activeBasename(stem, ext) {
		return false
	}
	_, entryExt := splitBasenameExt(name)
	return entryExt == ext || entryExt == "gz"
}

// activeBasename renders "stem.ext" or "stem" for an empty ext.
func activeBasename(stem, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// splitBasenameExt splits a basename into (stem, ext) the same way split
// does for a full path, operating purely on the basename string.
func splitBasenameExt(base string) (stem, ext string) {
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		return base[:idx], base[idx+1:]
	}
	return base, ""
}

// listSiblingArtifacts enumerates sibling historical artifacts in dir for
// the given (stem, ext). Returns an empty slice (not an error) if dir does
// not exist.
func listSiblingArtifacts(dir, stem, ext string) ([]os.DirEntry, error) {
	lookDir := dir
	if lookDir == "" {
		lookDir = "."
	}
	entries, err := os.ReadDir(lookDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	out := entries[:0:0]
	for _, e := range entries {
		if isSiblingArtifact(e, stem, ext) {
			out = append(out, e)
		}
	}
	return out, nil
}
