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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newDiagLogger builds the internal diagnostic logger a FileSink uses to
// report rotation and write errors to standard error. Write still returns
// those errors to its caller; the root rotalog Logger discards them, so a
// logging call never fails. It never touches the sink's own active file.
func newDiagLogger(sinkName string) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zapcore.WarnLevel,
	)
	return zap.New(core).With(zap.String("sink", sinkName))
}
