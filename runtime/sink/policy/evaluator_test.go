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
	"testing"
	"time"

	spolicy "dirpx.dev/rotalog/apis/sink/policy"
)

func TestShouldRotate_PolicyTable(t *testing.T) {
	const threshold = int64(100)
	now := int64(1_000_000)
	past := now - 1 // crossed
	future := now + 1000000
	never := int64(0)

	cases := []struct {
		name     string
		size     int64
		deadline int64
		policy   spolicy.Rotation
		want     bool
	}{
		{"max-size-only below", 50, never, spolicy.MaxSizeOnly(threshold), false},
		{"max-size-only at", 100, never, spolicy.MaxSizeOnly(threshold), true},
		{"max-size-only above", 150, never, spolicy.MaxSizeOnly(threshold), true},

		{"max-size-or-time neither", 50, future, spolicy.MaxSizeOrTime(threshold, spolicy.Daily), false},
		{"max-size-or-time crossed only", 50, past, spolicy.MaxSizeOrTime(threshold, spolicy.Daily), true},
		{"max-size-or-time size only", 150, future, spolicy.MaxSizeOrTime(threshold, spolicy.Daily), true},
		{"max-size-or-time both", 150, past, spolicy.MaxSizeOrTime(threshold, spolicy.Daily), true},

		{"min-size-and-time neither", 50, future, spolicy.MinSizeAndTime(threshold, spolicy.Daily), false},
		{"min-size-and-time crossed only", 50, past, spolicy.MinSizeAndTime(threshold, spolicy.Daily), false},
		{"min-size-and-time size only", 150, future, spolicy.MinSizeAndTime(threshold, spolicy.Daily), false},
		{"min-size-and-time both", 150, past, spolicy.MinSizeAndTime(threshold, spolicy.Daily), true},

		{"time-only not crossed", 9999, future, spolicy.TimeOnly(spolicy.Daily), false},
		{"time-only crossed", 9999, past, spolicy.TimeOnly(spolicy.Daily), true},
		{"time-only never", 9999, never, spolicy.TimeOnly(spolicy.Daily), false},
	}

	for _, c := range cases {
		got := shouldRotate(c.size, c.deadline, c.policy, now)
		if got != c.want {
			t.Fatalf("%s: shouldRotate = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNextDeadlineAfter_NeverIsZero(t *testing.T) {
	now := time.Unix(1000, 0)
	if got := nextDeadlineAfter(spolicy.MaxSizeOnly(10), now); got != 0 {
		t.Fatalf("nextDeadlineAfter(MaxSizeOnly) = %d, want 0", got)
	}
	if got := nextDeadlineAfter(spolicy.TimeOnly(spolicy.Never), now); got != 0 {
		t.Fatalf("nextDeadlineAfter(TimeOnly(Never)) = %d, want 0", got)
	}
}

func TestNextDeadlineAfter_AddsInterval(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	got := nextDeadlineAfter(spolicy.TimeOnly(spolicy.Hourly), now)
	want := now.Add(time.Hour).UnixMilli()
	if got != want {
		t.Fatalf("nextDeadlineAfter(TimeOnly(Hourly)) = %d, want %d", got, want)
	}
}
