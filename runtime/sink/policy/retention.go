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
	"sort"
	"time"
)

// pruneByCount keeps at most keep sibling historical artifacts for (dir,
// stem, ext), deleting the oldest ones first as judged by each artifact's
// filesystem creation time. keep <= 0 deletes every sibling. Errors on an
// individual file abort the pass; earlier deletions in the pass remain
// visible to the caller (fail-fast, no rollback).
func pruneByCount(dir, stem, ext string, keep int) error {
	entries, err := listSiblingArtifacts(dir, stem, ext)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	if len(entries) <= keep {
		return nil
	}

	type artifact struct {
		path    string
		created time.Time
	}

	artifacts := make([]artifact, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return err
		}
		lookDir := dir
		if lookDir == "" {
			lookDir = "."
		}
		artifacts = append(artifacts, artifact{
			path:    filepath.Join(lookDir, e.Name()),
			created: fileCreationTime(info),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].created.Before(artifacts[j].created)
	})

	toRemove := artifacts[:len(artifacts)-keep]
	for _, a := range toRemove {
		if err := os.Remove(a.path); err != nil {
			return err
		}
	}
	return nil
}

// pruneByMaxAge deletes every sibling historical artifact for (dir, stem,
// ext) whose age exceeds days*86400 seconds. Errors on an individual file
// abort the pass.
func pruneByMaxAge(dir, stem, ext string, days int, now time.Time) error {
	entries, err := listSiblingArtifacts(dir, stem, ext)
	if err != nil {
		return err
	}

	maxAge := time.Duration(days) * 24 * time.Hour
	lookDir := dir
	if lookDir == "" {
		lookDir = "."
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return err
		}
		if now.Sub(fileCreationTime(info)) <= maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(lookDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
