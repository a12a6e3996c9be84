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

package sink

import (
	"context"
	"fmt"
	"time"

	"dirpx.dev/rotalog/apis/health"
	"dirpx.dev/rotalog/runtime/sink/policy"
)

// nearRotationFraction is the fraction of a configured byte ceiling at
// which a FileSink health check reports StatusDegraded rather than
// StatusHealthy.
const nearRotationFraction = 0.90

// FileSinkHealthChecker reports whether a FileSink's active file is
// writable and how close it is to a size-based rotation.
type FileSinkHealthChecker struct {
	name string
	sink *policy.FileSink
}

var _ health.Checker = (*FileSinkHealthChecker)(nil)

// NewFileSinkHealthChecker builds a health.Checker for s, reported under
// name (typically s.Name()).
func NewFileSinkHealthChecker(name string, s *policy.FileSink) *FileSinkHealthChecker {
	return &FileSinkHealthChecker{name: name, sink: s}
}

// Check implements health.Checker.
//
// Status rules:
//   - StatusUnhealthy: the active file handle no longer accepts writes.
//   - StatusDegraded: the policy defines a byte ceiling and the active
//     file has reached at least 90% of it.
//   - StatusHealthy: otherwise.
func (c *FileSinkHealthChecker) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	res := health.Result{
		Name:       c.name,
		ObservedAt: time.Now(),
		Status:     health.StatusHealthy,
		Details:    map[string]any{},
	}

	if !c.sink.Writable() {
		res.Status = health.StatusUnhealthy
		res.Error = fmt.Errorf("rotalog: active file is not writable")
		return res, nil
	}

	size, maxSize, ok := c.sink.Stat()
	res.Details["size_bytes"] = size
	if !ok {
		return res, nil
	}
	res.Details["max_size_bytes"] = maxSize

	if maxSize > 0 && float64(size) >= nearRotationFraction*float64(maxSize) {
		res.Status = health.StatusDegraded
	}
	return res, nil
}
