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

	asink "dirpx.dev/rotalog/apis/sink"
	"dirpx.dev/rotalog/runtime/sink/policy"
)

// SinkKind is the registry kind under which the rotating file sink builder
// is registered.
const SinkKind = "sink"

// FileSinkName is the registry name under which the rotating file sink
// builder is registered.
const FileSinkName = "file"

func init() {
	Register(SinkKind, FileSinkName, fileSinkBuilder{}.Build)
}

// fileSinkBuilder implements asink.Builder for the rotating file sink,
// adapting policy.NewFileSink to the registry's (kind, name) -> Sink
// construction contract.
//
// Build ignores its name argument: the built sink's Name() is spec.Name, or
// "file(<base>)" when spec.Name is empty, whatever name was passed.
type fileSinkBuilder struct{}

var _ asink.Builder = fileSinkBuilder{}

func (fileSinkBuilder) Kind() string { return FileSinkName }

func (fileSinkBuilder) Build(_ context.Context, _ string, spec asink.Specification) (asink.Sink, error) {
	fs, err := policy.NewFileSink(spec)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
