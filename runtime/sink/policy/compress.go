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
)

// compressPending replaces every sibling historical artifact for (dir,
// stem, ext) whose extension is exactly ext (i.e. not already .gz) with a
// gzip-compressed copy named "<basename>.gz", removing the original after a
// successful copy. It is invoked only when a sink has both compress and
// delay_compress enabled, from inside a rotation, so that at most one
// uncompressed historical artifact ever exists between rotations.
//
// Not atomic with respect to observers; a crash between writing the .gz
// copy and removing the source leaves both on disk.
func compressPending(dir, stem, ext string) error {
	entries, err := listSiblingArtifacts(dir, stem, ext)
	if err != nil {
		return err
	}

	lookDir := dir
	if lookDir == "" {
		lookDir = "."
	}
	for _, e := range entries {
		if _, entryExt := splitBasenameExt(e.Name()); entryExt != ext {
			continue
		}
		srcPath := filepath.Join(lookDir, e.Name())
		if err := compressOne(srcPath); err != nil {
			return err
		}
	}
	return nil
}

// compressOne gzips srcPath into srcPath+".gz" and removes srcPath on
// success.
func compressOne(srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dstPath := srcPath + ".gz"
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := streamCopy(dst, src, true); err != nil {
		return err
	}
	return os.Remove(srcPath)
}
