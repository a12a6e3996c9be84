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
	"io"
	"os"
	"time"
)

// truncateHandle sets f's length to 0 and seeks to the start, leaving f open
// in append mode.
func truncateHandle(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err := f.Seek(0, io.SeekStart)
	return err
}

// streamCopy copies all bytes from src to dst. When compress is true, dst is
// wrapped in a gzip writer at default compression and the writer's footer is
// flushed before returning. Errors propagate to the caller; the caller owns
// cleanup of a partially written dst.
func streamCopy(dst io.Writer, src io.Reader, compress bool) error {
	if !compress {
		_, err := io.Copy(dst, src)
		return err
	}

	gw := gzip.NewWriter(dst)
	if _, err := io.Copy(gw, src); err != nil {
		_ = gw.Close()
		return err
	}
	return gw.Close()
}

// fileAgeSeconds returns 0 if path does not name a regular file; otherwise
// it returns the wall-clock seconds elapsed since the file's creation
// timestamp, as approximated by fileCreationTime.
func fileAgeSeconds(path string, now time.Time) int64 {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	age := now.Sub(fileCreationTime(info))
	if age < 0 {
		return 0
	}
	return int64(age.Seconds())
}

// fileCreationTime approximates a file's creation timestamp.
//
// Go's os.FileInfo has no portable birth-time field; ModTime is the closest
// stand-in available on every platform this module targets, so a file's
// apparent "age" is really its time since last write. This mirrors the
// fallback the teacher's own rotatingFileSink used for the same reason.
func fileCreationTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
