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

import "fmt"

// RetentionKind identifies which pruning rule a Retention value carries.
type RetentionKind int8

const (
	// ByCountKind keeps the newest N rolled files and deletes the rest.
	ByCountKind RetentionKind = iota

	// ByMaxAgeKind deletes rolled files older than a fixed number of days.
	ByMaxAgeKind
)

// Retention is a closed sum type describing how rolled (non-active) files
// belonging to a sink are pruned. Construct one with ByCount or ByMaxAge;
// the zero value equals ByCount(0), the no-rollover mode.
type Retention struct {
	Kind    RetentionKind
	Count   int
	MaxDays int
}

// ByCount keeps the newest n rolled files for a sink, deleting older ones.
// Rolled files are ordered by their filesystem modification time (the
// engine's stand-in for creation time), not by the timestamp embedded in
// their name.
func ByCount(n int) Retention {
	return Retention{Kind: ByCountKind, Count: n}
}

// ByMaxAge deletes rolled files whose filesystem modification time is more
// than days old, regardless of how many remain.
func ByMaxAge(days int) Retention {
	return Retention{Kind: ByMaxAgeKind, MaxDays: days}
}

// Validate checks that the retention policy is internally consistent.
func (r Retention) Validate() error {
	switch r.Kind {
	case ByCountKind:
		if r.Count < 0 {
			return fmt.Errorf("rotalog: by-count retention requires a non-negative count, got %d", r.Count)
		}
	case ByMaxAgeKind:
		if r.MaxDays <= 0 {
			return fmt.Errorf("rotalog: by-max-age retention requires a positive day count, got %d", r.MaxDays)
		}
	default:
		return fmt.Errorf("rotalog: unknown retention kind %d", int(r.Kind))
	}
	return nil
}

// String renders the RetentionKind for diagnostics and error messages.
func (k RetentionKind) String() string {
	switch k {
	case ByCountKind:
		return "by-count"
	case ByMaxAgeKind:
		return "by-max-age"
	default:
		return fmt.Sprintf("retentionKind(%d)", int(k))
	}
}
