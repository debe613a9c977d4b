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

package container

import (
	"io/fs"
	"runtime"
	"strings"
	"testing/fstest"

	"javafs/filehandle"
	"javafs/kind"
	"javafs/location"
	"javafs/modulefinder"
)

// RuntimeModule describes one module of the ambient runtime image, as
// supplied by the caller: this library has no access to a real `jrt:`
// filesystem, so the caller hands it the manifest of module names and
// the packages each one exports.
type RuntimeModule struct {
	Name     string
	Packages []string
}

// Runtime is a read-only Container standing in for the JDK's own module
// image (spec.md §1's "ambient runtime image"). It answers lookups
// against a caller-supplied manifest rather than parsing a real runtime
// image, and reuses the same Container contract as every other variant
// so the facade and package-container-group code paths exercise it
// identically rather than special-casing it.
type Runtime struct {
	loc     location.Location
	version string
	modules []RuntimeModule
}

// NewRuntime builds a Runtime container for loc from modules, tagged
// with the running process's own Go runtime version (stands in for the
// JDK release this image claims to be, since there is no real `jrt:`
// image underneath it).
func NewRuntime(loc location.Location, modules []RuntimeModule) *Runtime {
	return &Runtime{loc: mustLocation(loc), version: runtime.Version(), modules: modules}
}

func (r *Runtime) uri(pkgPath string) string {
	return "javaruntime://" + r.version + "/" + pkgPath
}

func (r *Runtime) hasPackage(pkg string) bool {
	for _, m := range r.modules {
		for _, p := range m.Packages {
			if p == pkg {
				return true
			}
		}
	}
	return false
}

func (r *Runtime) Contains(h filehandle.Handle) bool {
	return strings.HasPrefix(h.URI(), "javaruntime://"+r.version+"/")
}

func (r *Runtime) GetFile(fragments ...string) (string, bool, error) {
	return "", false, nil
}

func (r *Runtime) GetFileForInput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	if !r.hasPackage(pkg) {
		return filehandle.Handle{}, false, nil
	}
	rel, err := ResourceToPath("", pkg, relativeName)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	rel = strings.TrimPrefix(rel, "/")
	return filehandle.New(r.loc, "", rel, r.uri(rel)), true, nil
}

// GetFileForOutput always returns ok=false: the runtime image is
// read-only.
func (r *Runtime) GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}

func (r *Runtime) GetJavaFileForInput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	pkg := BinaryToPackage(binaryName)
	if !r.hasPackage(pkg) {
		return filehandle.Handle{}, false, nil
	}
	rel, err := BinaryToPath("", binaryName, k)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	rel = strings.TrimPrefix(rel, "/")
	return filehandle.New(r.loc, "", rel, r.uri(rel)), true, nil
}

// GetJavaFileForOutput always returns ok=false: the runtime image is
// read-only.
func (r *Runtime) GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	return filehandle.Handle{}, false, nil
}

func (r *Runtime) InferBinaryName(h filehandle.Handle) (string, bool) {
	return h.InferBinaryName()
}

// ListFilesByKind always yields no entries: the caller-supplied manifest
// only records which packages a module exports, not the individual
// class files within them, so there is nothing to enumerate.
func (r *Runtime) ListFilesByKind(pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error {
	return nil
}

func (r *Runtime) ListAllFiles() ([]string, error) {
	var out []string
	for _, m := range r.modules {
		out = append(out, m.Packages...)
	}
	return out, nil
}

func (r *Runtime) ModuleFinder() (func() []modulefinder.Module, bool) {
	return func() []modulefinder.Module {
		mods := make([]modulefinder.Module, 0, len(r.modules))
		for _, m := range r.modules {
			mods = append(mods, modulefinder.Module{Name: m.Name, Path: "javaruntime:" + m.Name})
		}
		return mods
	}, true
}

// Close releases nothing: the runtime image manifest is owned by the
// caller, not this container.
func (r *Runtime) Close() error { return nil }

// FS is always empty: the runtime image manifest carries no service
// provider files, so there is nothing to expose for classloader.Loader.
func (r *Runtime) FS() fs.FS { return fstest.MapFS{} }
