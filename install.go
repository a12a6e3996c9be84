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
	"errors"
	"sync"
)

// ErrAlreadyInstalled is returned by Finish/install when a process-wide
// logger has already been installed. Installation is one-shot: there is no
// teardown path, and the active file handle lives until process exit.
var ErrAlreadyInstalled = errors.New("rotalog: a logger is already installed for this process")

var (
	installMu sync.Mutex
	installed *Logger
)

// install records l as the process-wide logger. It fails if a logger has
// already been installed.
func install(l *Logger) error {
	installMu.Lock()
	defer installMu.Unlock()
	if installed != nil {
		return ErrAlreadyInstalled
	}
	installed = l
	return nil
}

// Installed returns the process-wide logger installed by a prior call to
// Builder.Finish, and true if one has been installed.
func Installed() (*Logger, bool) {
	installMu.Lock()
	defer installMu.Unlock()
	return installed, installed != nil
}
