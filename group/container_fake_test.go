// Copyright 2015 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package group

import (
	"errors"
	"io/fs"
	"testing/fstest"

	"javafs/filehandle"
	"javafs/kind"
	"javafs/modulefinder"
)

// failingContainer is a Container whose Close always fails, used to
// exercise the group layer's close-aggregation behaviour.
type failingContainer struct{}

func (failingContainer) Contains(h filehandle.Handle) bool { return false }
func (failingContainer) GetFile(fragments ...string) (string, bool, error) {
	return "", false, nil
}
func (failingContainer) GetFileForInput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}
func (failingContainer) GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}
func (failingContainer) GetJavaFileForInput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}
func (failingContainer) GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}
func (failingContainer) InferBinaryName(h filehandle.Handle) (string, bool) { return "", false }
func (failingContainer) ListFilesByKind(pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error {
	return nil
}
func (failingContainer) ListAllFiles() ([]string, error) { return nil, nil }
func (failingContainer) ModuleFinder() (func() []modulefinder.Module, bool) {
	return nil, false
}
func (failingContainer) Close() error { return errors.New("simulated close failure") }
func (failingContainer) FS() fs.FS    { return fstest.MapFS{} }
