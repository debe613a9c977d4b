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

// Package repository implements Repository (C7): the ordered registry
// from location identity to the appropriate group kind, enforcing
// location-kind invariants and the source-path/module-source-path
// mutual exclusion rule.
package repository

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"

	"javafs/group"
	"javafs/javafserr"
	"javafs/location"
	"javafs/pathroot"
)

const (
	sourcePathName       = "SOURCE_PATH"
	moduleSourcePathName = "MODULE_SOURCE_PATH"
)

type entry struct {
	loc location.Location
	pkg *group.PackageGroup
	mod *group.ModuleGroup
	out *group.OutputGroup
}

// Repository is an ordered mapping from Location to the group bound to
// it, at most one of source-path/module-source-path registered at once.
type Repository struct {
	release int

	mu                   sync.Mutex
	byName               map[string]*entry
	sourcePathPresent     bool
	moduleSourcePathPresent bool
}

// New creates an empty Repository that builds archive containers bound
// to release (the effective Java release, controlling the multi-release
// overlay).
func New(release int) *Repository {
	return &Repository{release: release, byName: make(map[string]*entry)}
}

func (r *Repository) checkMutualExclusionLocked(name string) error {
	switch name {
	case sourcePathName:
		if r.moduleSourcePathPresent {
			return javafserr.NewIllegalInput(name, "module-source-path is already registered; source-path and module-source-path are mutually exclusive")
		}
	case moduleSourcePathName:
		if r.sourcePathPresent {
			return javafserr.NewIllegalInput(name, "source-path is already registered; source-path and module-source-path are mutually exclusive")
		}
	}
	return nil
}

func (r *Repository) markRegisteredLocked(name string) {
	switch name {
	case sourcePathName:
		r.sourcePathPresent = true
	case moduleSourcePathName:
		r.moduleSourcePathPresent = true
	}
}

// getOrCreateLocked returns the entry for top (a non-Module location),
// creating it as the given kind if absent. kind is one of "pkg", "mod",
// "out".
func (r *Repository) getOrCreateLocked(top location.Location, kind string) (*entry, error) {
	e, ok := r.byName[top.Name()]
	if ok {
		return e, nil
	}
	if err := r.checkMutualExclusionLocked(top.Name()); err != nil {
		return nil, err
	}
	e = &entry{loc: top}
	switch kind {
	case "pkg":
		e.pkg = group.NewPackageGroup(top, r.release)
	case "mod":
		e.mod = group.NewModuleGroup(top)
	case "out":
		e.out = group.NewOutputGroup(top)
	}
	r.byName[top.Name()] = e
	r.markRegisteredLocked(top.Name())
	return e, nil
}

func kindForLocation(loc location.Location) string {
	switch {
	case loc.Output():
		return "out"
	case loc.ModuleOriented():
		return "mod"
	default:
		return "pkg"
	}
}

// AddPath routes root to the appropriate group for loc, creating that
// group on demand.
//
// If loc is a ModuleLocation, root is added directly to that named
// module's sub-group (auto-creating both the parent group and the
// module slot). Otherwise, for a module-oriented location, root is
// handed to the module discoverer (C3) and each module it finds is
// registered under its discovered name (§8 scenario S3). For a
// package-oriented or output location, root is appended as a package
// container (the output location's single legacy writable root, for an
// output location).
func (r *Repository) AddPath(loc location.Location, root pathroot.Root) error {
	if mloc, isModule := loc.(location.Module); isModule {
		return r.addModulePath(mloc, root)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	switch kindForLocation(loc) {
	case "pkg":
		e, err := r.getOrCreateLocked(loc, "pkg")
		if err != nil {
			return err
		}
		_, err = e.pkg.AddRoot(root)
		return err
	case "mod":
		e, err := r.getOrCreateLocked(loc, "mod")
		if err != nil {
			return err
		}
		_, err = e.mod.AddDiscoveredRoot(r.release, root)
		return err
	case "out":
		e, err := r.getOrCreateLocked(loc, "out")
		if err != nil {
			return err
		}
		_, err = e.out.AddPackageRoot(r.release, root)
		return err
	}
	return javafserr.NewIllegalInput(loc.Name(), "unrecognised location kind")
}

func (r *Repository) addModulePath(mloc location.Module, root pathroot.Root) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	parent := mloc.Parent()
	kind := "mod"
	if parent.Output() {
		kind = "out"
	}
	e, err := r.getOrCreateLocked(parent, kind)
	if err != nil {
		return err
	}
	var modSide *group.ModuleGroup
	if kind == "out" {
		modSide = e.out.ModuleSide()
	} else {
		modSide = e.mod
	}
	_, err = modSide.AddModuleRoot(mloc.ModuleName(), r.release, root)
	return err
}

// AddPaths adds every root in roots to loc, in order, stopping at the
// first error.
func (r *Repository) AddPaths(loc location.Location, roots []pathroot.Root) error {
	for _, root := range roots {
		if err := r.AddPath(loc, root); err != nil {
			return err
		}
	}
	return nil
}

// GetPackageGroup returns the PackageGroup stored for loc, or an error
// if the stored group (or loc itself) is not package-oriented.
func (r *Repository) GetPackageGroup(loc location.Location) (*group.PackageGroup, error) {
	if mloc, isModule := loc.(location.Module); isModule {
		sub, ok := r.GetPackageOrientedGroup(mloc)
		if !ok {
			return nil, nil
		}
		return sub, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[loc.Name()]
	if !ok {
		return nil, nil
	}
	if e.pkg == nil {
		return nil, javafserr.NewIllegalInput(loc.Name(), "location is not registered as a package-oriented group")
	}
	return e.pkg, nil
}

// GetModuleGroup returns the ModuleGroup stored for loc.
func (r *Repository) GetModuleGroup(loc location.Location) (*group.ModuleGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[loc.Name()]
	if !ok {
		return nil, nil
	}
	if e.mod == nil {
		return nil, javafserr.NewIllegalInput(loc.Name(), "location is not registered as a module-oriented group")
	}
	return e.mod, nil
}

// GetOutputGroup returns the OutputGroup stored for loc.
func (r *Repository) GetOutputGroup(loc location.Location) (*group.OutputGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[loc.Name()]
	if !ok {
		return nil, nil
	}
	if e.out == nil {
		return nil, javafserr.NewIllegalInput(loc.Name(), "location is not registered as an output group")
	}
	return e.out, nil
}

// GetGroup returns whichever group kind is stored for loc, as an `any`
// the caller type-switches on (*group.PackageGroup / *group.ModuleGroup
// / *group.OutputGroup), or nil if loc is not registered.
func (r *Repository) GetGroup(loc location.Location) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[loc.Name()]
	if !ok {
		return nil
	}
	switch {
	case e.pkg != nil:
		return e.pkg
	case e.mod != nil:
		return e.mod
	case e.out != nil:
		return e.out
	}
	return nil
}

// GetPackageOrientedGroup resolves loc to the PackageGroup that answers
// package-oriented lookups for it: for a ModuleLocation, its parent's
// module-group's (or output-group's module-side) per-module sub-group;
// for a package-oriented location, the package group directly. Returns
// ok=false if not present.
func (r *Repository) GetPackageOrientedGroup(loc location.Location) (*group.PackageGroup, bool) {
	if mloc, isModule := loc.(location.Module); isModule {
		r.mu.Lock()
		e, ok := r.byName[mloc.Parent().Name()]
		r.mu.Unlock()
		if !ok {
			return nil, false
		}
		var modSide *group.ModuleGroup
		if e.out != nil {
			modSide = e.out.ModuleSide()
		} else {
			modSide = e.mod
		}
		if modSide == nil {
			return nil, false
		}
		return modSide.GetModule(mloc.ModuleName())
	}
	r.mu.Lock()
	e, ok := r.byName[loc.Name()]
	r.mu.Unlock()
	if !ok || e.pkg == nil {
		return nil, false
	}
	return e.pkg, true
}

// CopyContainers appends each container of from to to. Both must exist
// and be of the same package-oriented kind.
func (r *Repository) CopyContainers(from, to location.Location) error {
	fromGroup, ok := r.GetPackageOrientedGroup(from)
	if !ok {
		return javafserr.NewIllegalInput(from.Name(), "source location has no registered package-oriented group")
	}
	toGroup, ok := r.GetPackageOrientedGroup(to)
	if !ok {
		return javafserr.NewIllegalInput(to.Name(), "destination location has no registered package-oriented group")
	}
	for _, c := range fromGroup.Containers() {
		toGroup.AddContainer(c)
	}
	return nil
}

// CreateEmptyLocation creates an empty group of the right kind for loc;
// idempotent (a second call leaves exactly one group for loc).
func (r *Repository) CreateEmptyLocation(loc location.Location) error {
	if mloc, isModule := loc.(location.Module); isModule {
		r.mu.Lock()
		defer r.mu.Unlock()
		parent := mloc.Parent()
		kind := "mod"
		if parent.Output() {
			kind = "out"
		}
		e, err := r.getOrCreateLocked(parent, kind)
		if err != nil {
			return err
		}
		modSide := e.mod
		if kind == "out" {
			modSide = e.out.ModuleSide()
		}
		modSide.GetOrCreateModule(mloc.ModuleName(), r.release)
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.getOrCreateLocked(loc, kindForLocation(loc))
	return err
}

// ListLocationsForModules returns the set of current ModuleLocations for
// a module-oriented or output location.
func (r *Repository) ListLocationsForModules(loc location.Location) ([]location.Module, error) {
	r.mu.Lock()
	e, ok := r.byName[loc.Name()]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	switch {
	case e.mod != nil:
		return e.mod.LocationsForModules(), nil
	case e.out != nil:
		return e.out.ModuleSide().LocationsForModules(), nil
	default:
		return nil, javafserr.NewIllegalInput(loc.Name(), "location is not module-oriented or output")
	}
}

// HasLocation reports whether loc has a registered group.
func (r *Repository) HasLocation(loc location.Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byName[loc.Name()]
	return ok
}

// Entries returns every registered top-level Location, ordered by
// location name. ModuleLocations are held inside their parent's group
// and are not listed here.
func (r *Repository) Entries() []location.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]location.Location, 0, len(r.byName))
	for _, e := range r.byName {
		out = append(out, e.loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Close closes every group, aggregating failures into one composite
// error. A second call is a no-op (nothing is left registered).
func (r *Repository) Close() error {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.byName))
	for _, e := range r.byName {
		entries = append(entries, e)
	}
	r.byName = make(map[string]*entry)
	r.sourcePathPresent = false
	r.moduleSourcePathPresent = false
	r.mu.Unlock()

	var result *multierror.Error
	for _, e := range entries {
		var err error
		switch {
		case e.pkg != nil:
			err = e.pkg.Close()
		case e.mod != nil:
			err = e.mod.Close()
		case e.out != nil:
			err = e.out.Close()
		}
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}
