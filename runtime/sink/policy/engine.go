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

// Package policy implements the rotation engine: a Sink that writes to a
// single active file and rolls it over according to a configured size/time
// policy, pruning and optionally compressing historical artifacts.
package policy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	asink "dirpx.dev/rotalog/apis/sink"
	spolicy "dirpx.dev/rotalog/apis/sink/policy"
	"go.uber.org/zap"
)

var (
	// ErrClosed indicates the sink has already been closed.
	ErrClosed = errors.New("rotalog: sink closed")

	// ErrNoPath indicates an empty active file path was supplied.
	ErrNoPath = errors.New("rotalog: empty path")
)

// FileSink is a Sink that appends records to a single active file and
// rotates it per a configured spolicy.Rotation / spolicy.Retention.
//
// The active file handle, its cached size and its decomposed (dir, stem,
// ext) are guarded by mu; this lock is held for the entire duration of a
// rotation and for each ordinary write+flush. The next scheduled rotation
// deadline is guarded by its own RWMutex so the policy check on the hot
// path only needs a read lock.
type FileSink struct {
	name string

	mu   sync.Mutex
	file *os.File
	size int64
	dir  string
	stem string
	ext  string

	deadlineMu sync.RWMutex
	nextAt     int64 // unix millis; 0 means never

	rotation      spolicy.Rotation
	retention     spolicy.Retention
	compress      bool
	delayCompress bool

	diag *zap.Logger

	closedMu sync.Mutex
	closed   bool
}

var _ asink.Sink = (*FileSink)(nil)

// NewFileSink constructs a FileSink from spec, opening (or creating) the
// active file immediately and computing the initial cached size and next
// rotation deadline.
func NewFileSink(spec asink.Specification) (*FileSink, error) {
	if spec.Path == "" {
		return nil, ErrNoPath
	}
	if err := spec.Rotation.Validate(); err != nil {
		return nil, fmt.Errorf("rotalog: invalid rotation policy: %w", err)
	}
	if err := spec.Retention.Validate(); err != nil {
		return nil, fmt.Errorf("rotalog: invalid retention policy: %w", err)
	}

	dir, stem, ext := split(spec.Path)
	if stem == "" {
		return nil, fmt.Errorf("rotalog: %w: empty basename in %q", ErrNoPath, spec.Path)
	}

	name := spec.Name
	if name == "" {
		name = "file(" + filepath.Base(spec.Path) + ")"
	}

	s := &FileSink{
		name:          name,
		dir:           dir,
		stem:          stem,
		ext:           ext,
		rotation:      spec.Rotation,
		retention:     spec.Retention,
		compress:      spec.Compress,
		delayCompress: spec.DelayCompress,
		diag:          newDiagLogger(name),
	}

	if err := s.openActive(); err != nil {
		return nil, err
	}

	now := time.Now()
	s.nextAt = nextDeadlineAfter(s.rotation, now)

	return s, nil
}

// Name returns the sink's human-friendly identifier.
func (s *FileSink) Name() string {
	return s.name
}

// Write evaluates the rotation policy, rolls the active file over if
// needed, then appends entry to the (possibly new) active file and flushes.
//
// Any I/O error propagates to the caller; it is also reported to the
// internal diagnostic logger per the error handling rules a logging sink
// must follow: a rotation failure never crashes the host, and the next
// write attempts rotation again.
func (s *FileSink) Write(ctx context.Context, entry []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isClosed() {
		return ErrClosed
	}

	now := time.Now()
	deadline := s.readDeadline()
	if shouldRotate(s.size, deadline, s.rotation, now.UnixMilli()) {
		if err := s.rotateLocked(now); err != nil {
			s.diag.Error("rotation failed", zap.Error(err), zap.String("path", s.activePath()))
			return err
		}
	}
	if deadline > 0 && deadline <= now.UnixMilli() {
		s.writeDeadline(nextDeadlineAfter(s.rotation, now))
	}

	n, err := s.file.Write(entry)
	s.size += int64(n)
	if err != nil {
		s.diag.Error("write failed", zap.Error(err), zap.String("path", s.activePath()))
		return err
	}
	if err := s.file.Sync(); err != nil {
		s.diag.Error("flush failed", zap.Error(err), zap.String("path", s.activePath()))
		return err
	}
	return nil
}

// Flush calls Sync on the active file handle.
func (s *FileSink) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isClosed() {
		return ErrClosed
	}
	return s.file.Sync()
}

// Close closes the active file handle. Close is idempotent; after Close,
// Write and Flush return ErrClosed.
func (s *FileSink) Close(ctx context.Context) error {
	_ = ctx

	s.closedMu.Lock()
	if s.closed {
		s.closedMu.Unlock()
		return nil
	}
	s.closed = true
	s.closedMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Stat reports the active file's current cached size and, when the
// configured rotation policy defines a byte ceiling (MaxSizeOnly or
// MaxSizeOrTime), that ceiling. ok is false for policies with no byte
// ceiling (TimeOnly, MinSizeAndTime — whose Size is a floor, not a ceiling).
func (s *FileSink) Stat() (size int64, maxSize int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.rotation.Kind {
	case spolicy.MaxSizeOnlyKind, spolicy.MaxSizeOrTimeKind:
		return s.size, s.rotation.Size, true
	default:
		return s.size, 0, false
	}
}

// Writable reports whether the active file handle still accepts writes.
// It performs a zero-byte write, which succeeds on any open, non-closed
// handle without perturbing the file's contents or cached size.
func (s *FileSink) Writable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isClosed() {
		return false
	}
	_, err := s.file.Write(nil)
	return err == nil
}

func (s *FileSink) isClosed() bool {
	s.closedMu.Lock()
	defer s.closedMu.Unlock()
	return s.closed
}

func (s *FileSink) activePath() string {
	return activePath(s.dir, s.stem, s.ext)
}

func (s *FileSink) readDeadline() int64 {
	s.deadlineMu.RLock()
	defer s.deadlineMu.RUnlock()
	return s.nextAt
}

func (s *FileSink) writeDeadline(v int64) {
	s.deadlineMu.Lock()
	defer s.deadlineMu.Unlock()
	s.nextAt = v
}

// openActive creates parent directories and opens the active file in
// create+append mode, initializing the cached size from the file's current
// length.
func (s *FileSink) openActive() error {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return err
		}
	}

	// O_RDWR (not O_WRONLY): rollLocked reads the active file's current
	// bytes through this same handle to copy them into the rolled
	// artifact before truncating.
	path := s.activePath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o640)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	s.file = f
	s.size = info.Size()
	return nil
}

// rotateLocked performs the rollover sequence of §4.6 while the caller
// holds s.mu:
//
//  1. Run the pruner, sized so that the set after step 3 matches the
//     configured retention.
//  2. If delay_compress && compress, compress any previously rolled
//     uncompressed artifact.
//  3. Unless retention is ByCount(0), copy the active file's contents to a
//     new rolled artifact (gzip-framed iff compress && !delay_compress).
//  4. Truncate the active handle and reset the cached size.
//
// Pruning runs first so the directory never transiently exceeds the
// retention count. The new artifact is produced by copying then truncating,
// never by renaming, because the active handle stays open across rotation;
// renaming would require reopening under the lock and races with anything
// that pins path identity to an open handle.
func (s *FileSink) rotateLocked(now time.Time) error {
	skipRoll := s.retention.Kind == spolicy.ByCountKind && s.retention.Count == 0

	if err := s.pruneLocked(skipRoll); err != nil {
		return err
	}

	if s.delayCompress && s.compress {
		if err := compressPending(s.dir, s.stem, s.ext); err != nil {
			return err
		}
	}

	if !skipRoll {
		if err := s.rollLocked(now); err != nil {
			return err
		}
	}

	if err := truncateHandle(s.file); err != nil {
		return err
	}
	s.size = 0
	return nil
}

// pruneLocked runs the configured retention pass. For ByCount(n) it prunes
// to max(n-1, 0) so the directory holds exactly n artifacts after rollLocked
// adds the new one; ByCount(0) means skipRoll and prunes to 0 (deleting
// everything, since no new artifact will ever be created).
func (s *FileSink) pruneLocked(skipRoll bool) error {
	switch s.retention.Kind {
	case spolicy.ByCountKind:
		keep := s.retention.Count - 1
		if skipRoll {
			keep = s.retention.Count
		}
		if keep < 0 {
			keep = 0
		}
		return pruneByCount(s.dir, s.stem, s.ext, keep)
	case spolicy.ByMaxAgeKind:
		return pruneByMaxAge(s.dir, s.stem, s.ext, s.retention.MaxDays, time.Now())
	default:
		return fmt.Errorf("rotalog: unknown retention kind %d", int(s.retention.Kind))
	}
}

// rollLocked copies the active file's current bytes to a new rolled
// artifact path, gzip-framing them when compress is true and delayed
// compression is not in effect.
func (s *FileSink) rollLocked(now time.Time) error {
	compressNow := s.compress && !s.delayCompress
	rollTo := rolledPath(s.dir, s.stem, s.ext, compressNow, now)

	if _, err := s.file.Seek(0, 0); err != nil {
		return err
	}

	dst, err := os.OpenFile(rollTo, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	defer dst.Close()

	return streamCopy(dst, s.file, compressNow)
}
