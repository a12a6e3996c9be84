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

package rotalog

import (
	"context"
	"fmt"
	"math"

	acontext "dirpx.dev/rotalog/apis/context"
	"dirpx.dev/rotalog/apis/level"
	"dirpx.dev/rotalog/apis/sink"
	"dirpx.dev/rotalog/apis/sink/policy"
	runtimesink "dirpx.dev/rotalog/runtime/sink"
)

// Builder configures and constructs a single rotating file sink.
//
// Builder accumulates the first validation error across calls and surfaces
// it from Finish, rather than encoding configuration completeness at
// compile time: max_size and min_size are mutually exclusive, and that
// constraint is checked the moment the second of the pair is set.
type Builder struct {
	name   string
	target string
	lvl    level.Level

	path string

	maxSize    int64
	maxSizeSet bool
	minSize    int64
	minSizeSet bool

	interval policy.Interval

	rotationCount    int
	rotationCountSet bool
	maxAgeDays       int
	maxAgeSet        bool

	compress      bool
	delayCompress bool

	labels map[string]string

	staticPack acontext.Pack
	extractors []acontext.Extractor

	err error
}

// NewBuilder returns a Builder with the documented defaults: log level
// Trace, never-rotate interval, and no size or retention configured.
func NewBuilder() *Builder {
	return &Builder{
		lvl:      level.Trace,
		interval: policy.Never,
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Name sets the sink's diagnostic name. Defaults to "file(<base>)" when unset.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Target sets the module/category tag attached to every record emitted
// through this logger. Defaults to the sink name when unset.
func (b *Builder) Target(target string) *Builder {
	b.target = target
	return b
}

// LogLevel sets the severity threshold. Default: level.Trace (admit everything).
func (b *Builder) LogLevel(l level.Level) *Builder {
	if err := l.Validate(); err != nil {
		return b.fail(fmt.Errorf("rotalog: %w", err))
	}
	b.lvl = l
	return b
}

// FilePath sets the active log file path. Required; parent directories are
// created as needed.
func (b *Builder) FilePath(p string) *Builder {
	b.path = p
	return b
}

// Minutely sets the rotation interval to one minute.
func (b *Builder) Minutely() *Builder { b.interval = policy.Minutely; return b }

// Hourly sets the rotation interval to one hour.
func (b *Builder) Hourly() *Builder { b.interval = policy.Hourly; return b }

// Daily sets the rotation interval to 24 hours.
func (b *Builder) Daily() *Builder { b.interval = policy.Daily; return b }

// Weekly sets the rotation interval to 7 days.
func (b *Builder) Weekly() *Builder { b.interval = policy.Weekly; return b }

// Monthly sets the rotation interval to a fixed 30 days.
func (b *Builder) Monthly() *Builder { b.interval = policy.Monthly; return b }

// Yearly sets the rotation interval to a fixed 365 days.
func (b *Builder) Yearly() *Builder { b.interval = policy.Yearly; return b }

// MaxSize sets a byte threshold that triggers rotation once the active file
// reaches it. Mutually exclusive with MinSize.
func (b *Builder) MaxSize(n int64) *Builder {
	if b.minSizeSet {
		return b.fail(fmt.Errorf("rotalog: max_size and min_size are mutually exclusive"))
	}
	b.maxSize = n
	b.maxSizeSet = true
	return b
}

// MinSize sets a byte threshold that, combined with a configured interval,
// requires both the time deadline to have passed AND the file to have
// reached this size before rotating. Mutually exclusive with MaxSize.
func (b *Builder) MinSize(n int64) *Builder {
	if b.maxSizeSet {
		return b.fail(fmt.Errorf("rotalog: max_size and min_size are mutually exclusive"))
	}
	b.minSize = n
	b.minSizeSet = true
	return b
}

// RotationCount keeps at most n rolled artifacts; 0 means never create a
// rolled artifact (rotations truncate only). Mutually exclusive with MaxAge.
func (b *Builder) RotationCount(n int) *Builder {
	if b.maxAgeSet {
		return b.fail(fmt.Errorf("rotalog: rotation_count and max_age are mutually exclusive"))
	}
	b.rotationCount = n
	b.rotationCountSet = true
	return b
}

// MaxAge prunes rolled artifacts older than the given number of days.
// Mutually exclusive with RotationCount.
func (b *Builder) MaxAge(days int) *Builder {
	if b.rotationCountSet {
		return b.fail(fmt.Errorf("rotalog: rotation_count and max_age are mutually exclusive"))
	}
	b.maxAgeDays = days
	b.maxAgeSet = true
	return b
}

// Compress gzips rolled artifacts when true.
func (b *Builder) Compress(v bool) *Builder {
	b.compress = v
	return b
}

// DelayCompress, when combined with Compress, makes one rotation write an
// uncompressed artifact and the following rotation compress it.
func (b *Builder) DelayCompress(v bool) *Builder {
	b.delayCompress = v
	return b
}

// Labels attaches diagnostic labels to the sink specification.
func (b *Builder) Labels(labels map[string]string) *Builder {
	b.labels = labels
	return b
}

// StaticContext attaches a fixed Pack (service, env, node, ...) to every
// record emitted through the built logger, ahead of any per-call extractor.
func (b *Builder) StaticContext(p acontext.Pack) *Builder {
	b.staticPack = p
	return b
}

// WithExtractor appends an Extractor consulted, in call order, after the
// static pack on every logging call. Multiple calls chain: later extractors
// override fields of earlier ones.
func (b *Builder) WithExtractor(e acontext.Extractor) *Builder {
	if e != nil {
		b.extractors = append(b.extractors, e)
	}
	return b
}

// contextExtractor assembles the static pack and any chained extractors
// into the single Extractor the built Logger consults per call.
func (b *Builder) contextExtractor() acontext.Extractor {
	chain := append([]acontext.Extractor{acontext.Static(b.staticPack)}, b.extractors...)
	return acontext.Chain(chain...)
}

// buildRotation derives a policy.Rotation from the configured size/interval
// options. With neither size option set, the default policy effectively
// never rotates: a MaxSizeOnly threshold of math.MaxInt64 bytes, chosen so
// a logger built with no rotation options behaves like a plain append-only
// file, matching a reasonable reading of "default policy" for a builder
// that only received a file path.
func (b *Builder) buildRotation() (policy.Rotation, error) {
	switch {
	case b.maxSizeSet && b.interval != policy.Never:
		return policy.MaxSizeOrTime(b.maxSize, b.interval), nil
	case b.maxSizeSet:
		return policy.MaxSizeOnly(b.maxSize), nil
	case b.minSizeSet && b.interval != policy.Never:
		return policy.MinSizeAndTime(b.minSize, b.interval), nil
	case b.minSizeSet:
		return policy.Rotation{}, fmt.Errorf("rotalog: min_size requires a rotation interval")
	case b.interval != policy.Never:
		return policy.TimeOnly(b.interval), nil
	default:
		return policy.MaxSizeOnly(math.MaxInt64), nil
	}
}

// buildRetention derives a policy.Retention from the configured
// rotation_count/max_age options, defaulting to keeping the 7 most recent
// rolled artifacts when neither is set.
func (b *Builder) buildRetention() policy.Retention {
	switch {
	case b.maxAgeSet:
		return policy.ByMaxAge(b.maxAgeDays)
	case b.rotationCountSet:
		return policy.ByCount(b.rotationCount)
	default:
		return policy.ByCount(7)
	}
}

// Finish validates the accumulated configuration, builds the rotation
// engine, and installs it as the process-wide logger. A second call to
// Finish in the same process (on this or any other Builder) fails: process
// installation is one-shot and there is no teardown path.
func (b *Builder) Finish() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.path == "" {
		return nil, fmt.Errorf("rotalog: file_path is required")
	}

	rotation, err := b.buildRotation()
	if err != nil {
		return nil, err
	}
	retention := b.buildRetention()

	spec := sink.Specification{
		Name:          b.name,
		Level:         b.lvl,
		Path:          b.path,
		Rotation:      rotation,
		Retention:     retention,
		Compress:      b.compress,
		DelayCompress: b.delayCompress,
		Labels:        b.labels,
	}

	s, err := runtimesink.Build(context.Background(), runtimesink.SinkKind, runtimesink.FileSinkName, spec)
	if err != nil {
		return nil, fmt.Errorf("rotalog: %w", err)
	}

	target := b.target
	if target == "" {
		target = s.Name()
	}

	l := newLogger(s, b.lvl, target)
	l = l.WithExtractor(b.contextExtractor())
	if err := install(l); err != nil {
		return nil, err
	}
	return l, nil
}
