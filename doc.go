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

// Package rotalog is a process-wide file-backed logging sink with
// automatic rotation.
//
// A Builder configures a single rotating file sink and installs it as the
// process-wide logger:
//
//	log, err := rotalog.NewBuilder().
//		FilePath("logs/app.log").
//		LogLevel(level.Info).
//		MaxSize(10 << 20).
//		Daily().
//		RotationCount(5).
//		Compress(true).
//		Finish()
//
// Finish opens the active file, computes the initial rotation deadline and
// installs the logger as the process-wide instance (see Installed). A second
// call to Finish in the same process fails with ErrAlreadyInstalled; there is
// no teardown path, the file handle lives until process exit.
//
// The rotation engine itself — the policy evaluator, rollover procedure,
// retention pruner and compression pass — lives in runtime/sink/policy and
// is accessible directly for callers that want a Sink without going
// through the process-wide installation step.
package rotalog
