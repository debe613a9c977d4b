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

// Package container implements Container: the addressable unit of
// storage at one PathRoot. Three variants exist — disk-wrapping,
// archive-wrapping (with multi-release overlay), and the read-only
// runtime-image stand-in — plus an output-writable mode shared by the
// disk variant.
package container

import (
	"io/fs"

	"javafs/filehandle"
	"javafs/kind"
	"javafs/location"
	"javafs/modulefinder"
)

// Container answers lookup/list/read/write for a single location rooted
// at one PathRoot.
//
// Read operations return ok=false iff the target file does not exist.
// Write operations return ok=false iff the container is read-only.
// Listing a non-existent package is silently empty, not an error.
type Container interface {
	// Contains reports whether h.FullPath() is under this container's
	// root and names a regular file.
	Contains(h filehandle.Handle) bool

	// GetFile joins fragments under the root and returns the resolved
	// path iff it names a regular file. Absolute fragments are a
	// programming error.
	GetFile(fragments ...string) (path string, ok bool, err error)

	// GetFileForInput resolves (pkg, relativeName) and returns a handle
	// iff the target is a regular file.
	GetFileForInput(pkg, relativeName string) (filehandle.Handle, bool, error)

	// GetFileForOutput resolves (pkg, relativeName) and returns a handle
	// whether or not the target exists yet; ok=false iff the container
	// is read-only.
	GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error)

	// GetJavaFileForInput converts (binaryName, k) to a path under the
	// root and returns a handle iff the target is a regular file.
	GetJavaFileForInput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error)

	// GetJavaFileForOutput is as GetJavaFileForInput but writable-only.
	GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error)

	// InferBinaryName derives h's binary name, iff h.FullPath() is
	// under this container's root.
	InferBinaryName(h filehandle.Handle) (string, bool)

	// ListFilesByKind walks pkg's sub-tree — depth 1 unless recurse —
	// following symlinks, emitting one handle per regular file whose
	// name ends with one of kinds' extensions. A missing package
	// directory yields no entries and is not an error.
	ListFilesByKind(pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error

	// ListAllFiles walks the full tree, following symlinks.
	ListAllFiles() ([]string, error)

	// ModuleFinder returns this container's module discoverer, or
	// ok=false for containers where modules cannot live.
	ModuleFinder() (func() []modulefinder.Module, bool)

	// Close releases only resources this container itself opened.
	// Already-open resources supplied from outside are never closed.
	Close() error

	// FS exposes this container's contents as a standard io/fs.FS,
	// rooted the same way ListFilesByKind addresses it. Used by
	// classloader.Loader to read META-INF/services/<interface> files.
	FS() fs.FS
}

// mustLocation returns l unchanged and panics if it is nil: every
// container variant is constructed against a non-nil Location.
func mustLocation(l location.Location) location.Location {
	if l == nil {
		panic("container: a nil Location is a programming error")
	}
	return l
}
