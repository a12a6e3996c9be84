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
	"time"

	spolicy "dirpx.dev/rotalog/apis/sink/policy"
)

// shouldRotate is the pure rotation decision of §4.5: given the current
// cached file size, the current scheduled deadline (0 means "never"), the
// configured policy and the current wall clock in milliseconds, it reports
// whether a rotation should happen now.
//
//	MaxSizeOnly(s)       -> fileSize >= s
//	MaxSizeOrTime(s, _)  -> crossed || fileSize >= s
//	MinSizeAndTime(s, _) -> crossed && fileSize >= s
//	TimeOnly(_)          -> crossed
//
// crossed is nextRotationAtMillis > 0 && nextRotationAtMillis <= nowMillis.
func shouldRotate(fileSize int64, nextRotationAtMillis int64, p spolicy.Rotation, nowMillis int64) bool {
	crossed := nextRotationAtMillis > 0 && nextRotationAtMillis <= nowMillis

	switch p.Kind {
	case spolicy.MaxSizeOnlyKind:
		return fileSize >= p.Size
	case spolicy.MaxSizeOrTimeKind:
		return crossed || fileSize >= p.Size
	case spolicy.MinSizeAndTimeKind:
		return crossed && fileSize >= p.Size
	case spolicy.TimeOnlyKind:
		return crossed
	default:
		return false
	}
}

// nextDeadlineAfter computes the next rotation deadline (Unix milliseconds)
// by adding the policy's configured interval to now. It returns 0 for
// policies with no time component or an interval of Never.
func nextDeadlineAfter(p spolicy.Rotation, now time.Time) int64 {
	return p.NextDeadlineMillis(now)
}
