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

// Package group implements the container-group layer: PackageGroup
// (C4), ModuleGroup (C5) and OutputGroup (C6) — the ordered/mapped
// collections of containers bound to one location.
package group

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"javafs/classloader"
	"javafs/container"
	"javafs/filehandle"
	"javafs/javafserr"
	"javafs/kind"
	"javafs/location"
	"javafs/pathroot"
)

// PackageGroup is an ordered list of containers bound to one
// package-oriented location: first-match lookup, composite class loader.
type PackageGroup struct {
	loc     location.Location
	release int

	mu      sync.Mutex
	ordered []container.Container
	loader  atomic.Pointer[classloader.Loader]
}

// NewPackageGroup creates an empty group for loc. loc must address its
// contents by package directly rather than by per-module sub-location —
// a plain package-oriented location, an output location (C6's package
// side), or a Module. A module-oriented location with no module picked
// out yet is the caller's bug, matching this stack's "invalid
// combination is a programming error" policy, so it panics rather than
// returning an error a caller might ignore.
func NewPackageGroup(loc location.Location, release int) *PackageGroup {
	if loc.ModuleOriented() {
		if _, isModule := loc.(location.Module); !isModule {
			panic("group: PackageGroup requires a package-oriented location")
		}
	}
	return &PackageGroup{loc: loc, release: release}
}

func (g *PackageGroup) Location() location.Location { return g.loc }

// AddContainer takes ownership of c: it will be closed by Close.
func (g *PackageGroup) AddContainer(c container.Container) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ordered = append(g.ordered, c)
	g.invalidateLoaderLocked()
}

// AddRoot wraps root as a container and appends it, without taking
// ownership of root itself: archive extensions (.zip/.jar/.war,
// case-insensitive) produce an Archive container bound to this group's
// release and require a *pathroot.Archive; any other root must be a
// *pathroot.Disk and produces a Disk container. Other Root types, such
// as *pathroot.Mem, are rejected with an IllegalInput error. The
// container built around it is owned (and closed) by this group, but
// root is not.
func (g *PackageGroup) AddRoot(root pathroot.Root) (container.Container, error) {
	c, err := g.buildContainer(root)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ordered = append(g.ordered, c)
	g.invalidateLoaderLocked()
	return c, nil
}

func (g *PackageGroup) buildContainer(root pathroot.Root) (container.Container, error) {
	lower := strings.ToLower(root.Path())
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".jar"), strings.HasSuffix(lower, ".war"):
		archiveRoot, ok := root.(*pathroot.Archive)
		if !ok {
			return nil, javafserr.NewIllegalInput(root.Path(), "archive-extension root must be a pathroot.Archive")
		}
		return container.NewArchive(g.loc, archiveRoot, g.release), nil
	default:
		diskRoot, ok := root.(*pathroot.Disk)
		if !ok {
			return nil, javafserr.NewIllegalInput(root.Path(), "non-archive root must be a pathroot.Disk")
		}
		return container.NewDisk(g.loc, diskRoot), nil
	}
}

// Containers returns a snapshot of this group's containers, in the order
// they were added.
func (g *PackageGroup) Containers() []container.Container {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]container.Container, len(g.ordered))
	copy(out, g.ordered)
	return out
}

func (g *PackageGroup) invalidateLoaderLocked() {
	g.loader.Store(nil)
}

// ClassLoader lazily builds a Loader over this group's current container
// list; a list mutation invalidates it, and the next call rebuilds.
// Fails with an IllegalInput error when this group's location
// is a ModuleLocation — services cannot be loaded from a specific module
// in isolation.
func (g *PackageGroup) ClassLoader() (*classloader.Loader, error) {
	if _, isModule := g.loc.(location.Module); isModule {
		return nil, javafserr.NewIllegalInput(g.loc.Name(), "cannot load services from a single module location in isolation")
	}
	if existing := g.loader.Load(); existing != nil {
		return existing, nil
	}
	g.mu.Lock()
	containers := make([]classloader.Container, len(g.ordered))
	for i, c := range g.ordered {
		containers[i] = c
	}
	g.mu.Unlock()
	built := classloader.New(containers)
	g.loader.Store(built)
	return built, nil
}

func (g *PackageGroup) Contains(h filehandle.Handle) bool {
	for _, c := range g.Containers() {
		if c.Contains(h) {
			return true
		}
	}
	return false
}

func (g *PackageGroup) GetFileForInput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	for _, c := range g.Containers() {
		h, ok, err := c.GetFileForInput(pkg, relativeName)
		if err != nil {
			return filehandle.Handle{}, false, err
		}
		if ok {
			return h, true, nil
		}
	}
	return filehandle.Handle{}, false, nil
}

// GetFileForOutput returns the first writable container's result.
func (g *PackageGroup) GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	for _, c := range g.Containers() {
		h, ok, err := c.GetFileForOutput(pkg, relativeName)
		if err != nil {
			return filehandle.Handle{}, false, err
		}
		if ok {
			return h, true, nil
		}
	}
	return filehandle.Handle{}, false, nil
}

func (g *PackageGroup) GetJavaFileForInput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	for _, c := range g.Containers() {
		h, ok, err := c.GetJavaFileForInput(binaryName, k)
		if err != nil {
			return filehandle.Handle{}, false, err
		}
		if ok {
			return h, true, nil
		}
	}
	return filehandle.Handle{}, false, nil
}

func (g *PackageGroup) GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	for _, c := range g.Containers() {
		h, ok, err := c.GetJavaFileForOutput(binaryName, k)
		if err != nil {
			return filehandle.Handle{}, false, err
		}
		if ok {
			return h, true, nil
		}
	}
	return filehandle.Handle{}, false, nil
}

func (g *PackageGroup) InferBinaryName(h filehandle.Handle) (string, bool) {
	for _, c := range g.Containers() {
		if name, ok := c.InferBinaryName(h); ok {
			return name, true
		}
	}
	return "", false
}

// ListFilesByKind is the concatenation of every container's listing, in
// container order, with no de-duplication — the compiler's view of
// shadowing is contractually allowed to see the same package from two
// containers.
func (g *PackageGroup) ListFilesByKind(pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error {
	for _, c := range g.Containers() {
		if err := c.ListFilesByKind(pkg, kinds, recurse, sink); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every owned container best-effort: every failure is
// recorded and closing continues, then one composite error is raised
// with every failure attached.
func (g *PackageGroup) Close() error {
	g.mu.Lock()
	containers := make([]container.Container, len(g.ordered))
	copy(containers, g.ordered)
	g.ordered = nil
	g.mu.Unlock()

	var result *multierror.Error
	for _, c := range containers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}
