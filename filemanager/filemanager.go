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

// Package filemanager implements FileManager (C8): the compiler-host
// file-manager facade over a Repository, enforcing the per-operation
// required-location-kind policy table.
package filemanager

import (
	"github.com/sirupsen/logrus"

	"javafs/classloader"
	"javafs/filehandle"
	"javafs/group"
	"javafs/javafserr"
	"javafs/kind"
	"javafs/location"
	"javafs/pathroot"
	"javafs/repository"
)

// Option configures a FileManager at construction.
type Option func(*FileManager)

// WithLogger overrides the default logger (logrus.StandardLogger()).
func WithLogger(l *logrus.Logger) Option {
	return func(fm *FileManager) { fm.log = l }
}

// FileManager is the compiler-host-facing facade: every operation
// dispatches to the repository, enforcing the required-location-kind
// policy named against each operation before delegating.
type FileManager struct {
	repo    *repository.Repository
	release int
	log     *logrus.Logger
}

// New creates a FileManager backed by a fresh, empty Repository emulating
// release (the Java release number controlling the multi-release archive
// overlay).
func New(release int, opts ...Option) *FileManager {
	fm := &FileManager{
		repo:    repository.New(release),
		release: release,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(fm)
	}
	return fm
}

// GetEffectiveRelease returns the release this facade was constructed
// with.
func (fm *FileManager) GetEffectiveRelease() int { return fm.release }

// AddPath delegates to the repository.
func (fm *FileManager) AddPath(loc location.Location, root pathroot.Root) error {
	return fm.repo.AddPath(loc, root)
}

// AddPaths delegates to the repository.
func (fm *FileManager) AddPaths(loc location.Location, roots []pathroot.Root) error {
	return fm.repo.AddPaths(loc, roots)
}

// CopyContainers delegates to the repository.
func (fm *FileManager) CopyContainers(from, to location.Location) error {
	return fm.repo.CopyContainers(from, to)
}

// CreateEmptyLocation delegates to the repository.
func (fm *FileManager) CreateEmptyLocation(loc location.Location) error {
	return fm.repo.CreateEmptyLocation(loc)
}

// HasLocation reports whether loc has a registered group.
func (fm *FileManager) HasLocation(loc location.Location) bool {
	return fm.repo.HasLocation(loc)
}

// requirePackageOriented accepts any location whose own contents are
// addressed by package, not by per-module sub-location: a plain
// package-oriented location, or a ModuleLocation (which always answers
// package-style lookups for its one module), but not a bare
// module-oriented or output location.
func requirePackageOriented(loc location.Location, op string) error {
	if _, isModule := loc.(location.Module); isModule {
		return nil
	}
	if loc.Output() || loc.ModuleOriented() {
		return javafserr.NewIllegalInput(loc.Name(), op+" requires a package-oriented location")
	}
	return nil
}

func requireOutput(loc location.Location, op string) error {
	if !loc.Output() {
		return javafserr.NewIllegalInput(loc.Name(), op+" requires an output location")
	}
	return nil
}

func requireModuleOrientedOrOutput(loc location.Location, op string) error {
	if !loc.ModuleOriented() && !loc.Output() {
		return javafserr.NewIllegalInput(loc.Name(), op+" requires a module-oriented or output location")
	}
	return nil
}

// GetFileForInput requires a package-oriented location; returns ok=false
// if no group is registered there.
func (fm *FileManager) GetFileForInput(loc location.Location, pkg, relativeName string) (filehandle.Handle, bool, error) {
	if err := requirePackageOriented(loc, "get_file_for_input"); err != nil {
		return filehandle.Handle{}, false, err
	}
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if !ok {
		return filehandle.Handle{}, false, nil
	}
	return g.GetFileForInput(pkg, relativeName)
}

// GetJavaFileForInput requires a package-oriented location.
func (fm *FileManager) GetJavaFileForInput(loc location.Location, binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	if err := requirePackageOriented(loc, "get_java_file_for_input"); err != nil {
		return filehandle.Handle{}, false, err
	}
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if !ok {
		return filehandle.Handle{}, false, nil
	}
	return g.GetJavaFileForInput(binaryName, k)
}

// List enumerates pkg's files of the given kinds under loc, which must
// be package-oriented; a missing group yields no entries.
func (fm *FileManager) List(loc location.Location, pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error {
	if err := requirePackageOriented(loc, "list"); err != nil {
		return err
	}
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if !ok {
		return nil
	}
	return g.ListFilesByKind(pkg, kinds, recurse, sink)
}

// InferBinaryName requires a package-oriented location.
func (fm *FileManager) InferBinaryName(loc location.Location, h filehandle.Handle) (string, bool, error) {
	if err := requirePackageOriented(loc, "infer_binary_name"); err != nil {
		return "", false, err
	}
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if !ok {
		return "", false, nil
	}
	name, ok := g.InferBinaryName(h)
	return name, ok, nil
}

// GetClassLoader requires a package-oriented location; null if absent.
func (fm *FileManager) GetClassLoader(loc location.Location) (*classloader.Loader, error) {
	if err := requirePackageOriented(loc, "get_class_loader"); err != nil {
		return nil, err
	}
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if !ok {
		return nil, nil
	}
	return g.ClassLoader()
}

// GetFileForOutput requires an output location; a ModuleLocation is
// permitted and auto-creates its module sub-group.
func (fm *FileManager) GetFileForOutput(loc location.Location, pkg, relativeName string) (filehandle.Handle, bool, error) {
	if err := requireOutput(loc, "get_file_for_output"); err != nil {
		return filehandle.Handle{}, false, err
	}
	mloc, isModule := loc.(location.Module)
	if !isModule {
		g, err := fm.repo.GetOutputGroup(loc)
		if err != nil || g == nil {
			return filehandle.Handle{}, false, err
		}
		return g.GetFileForOutput(pkg, relativeName)
	}
	sub, err := fm.moduleSubGroupFor(mloc)
	if err != nil || sub == nil {
		return filehandle.Handle{}, false, err
	}
	return sub.GetFileForOutput(pkg, relativeName)
}

// GetJavaFileForOutput is as GetFileForOutput but addressed by binary
// name and kind.
func (fm *FileManager) GetJavaFileForOutput(loc location.Location, binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	if err := requireOutput(loc, "get_java_file_for_output"); err != nil {
		return filehandle.Handle{}, false, err
	}
	mloc, isModule := loc.(location.Module)
	if !isModule {
		g, err := fm.repo.GetOutputGroup(loc)
		if err != nil || g == nil {
			return filehandle.Handle{}, false, err
		}
		return g.GetJavaFileForOutput(binaryName, k)
	}
	sub, err := fm.moduleSubGroupFor(mloc)
	if err != nil || sub == nil {
		return filehandle.Handle{}, false, err
	}
	return sub.GetJavaFileForOutput(binaryName, k)
}

// moduleSubGroupFor resolves mloc (a ModuleLocation within an output
// location) to its own per-module PackageGroup, auto-creating the
// sub-group when it doesn't exist yet.
func (fm *FileManager) moduleSubGroupFor(mloc location.Module) (*group.PackageGroup, error) {
	out, err := fm.repo.GetOutputGroup(mloc.Parent())
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.ModuleSide().GetOrCreateModule(mloc.ModuleName(), fm.release), nil
}

// GetModuleContainerGroup requires a module-oriented location.
func (fm *FileManager) GetModuleContainerGroup(loc location.Location) (*group.ModuleGroup, error) {
	if !loc.ModuleOriented() {
		return nil, javafserr.NewIllegalInput(loc.Name(), "get_module_container_group requires a module-oriented location")
	}
	return fm.repo.GetModuleGroup(loc)
}

// GetOutputContainerGroup requires an output location.
func (fm *FileManager) GetOutputContainerGroup(loc location.Location) (*group.OutputGroup, error) {
	if err := requireOutput(loc, "get_output_container_group"); err != nil {
		return nil, err
	}
	return fm.repo.GetOutputGroup(loc)
}

// GetPackageContainerGroup requires a package-oriented input location.
func (fm *FileManager) GetPackageContainerGroup(loc location.Location) (*group.PackageGroup, error) {
	if err := requirePackageOriented(loc, "get_package_container_group"); err != nil {
		return nil, err
	}
	return fm.repo.GetPackageGroup(loc)
}

// InferModuleName requires a package-oriented location; returns
// ok=false unless loc is a ModuleLocation, in which case it returns its
// module name.
func (fm *FileManager) InferModuleName(loc location.Location) (string, bool, error) {
	if err := requirePackageOriented(loc, "infer_module_name"); err != nil {
		return "", false, err
	}
	mloc, isModule := loc.(location.Module)
	if !isModule {
		return "", false, nil
	}
	return mloc.ModuleName(), true, nil
}

// GetLocationForModuleByName synthesises a ModuleLocation(parent, name).
// parent must be module-oriented or an output location.
func (fm *FileManager) GetLocationForModuleByName(parent location.Location, name string) (location.Module, error) {
	if err := requireModuleOrientedOrOutput(parent, "get_location_for_module"); err != nil {
		return location.Module{}, err
	}
	return location.NewModule(parent, name), nil
}

// GetLocationForModuleByHandle returns h's own location iff it is a
// ModuleLocation whose parent equals parent; else ok=false. parent must
// be module-oriented or an output location.
func (fm *FileManager) GetLocationForModuleByHandle(parent location.Location, h filehandle.Handle) (location.Module, bool, error) {
	if err := requireModuleOrientedOrOutput(parent, "get_location_for_module"); err != nil {
		return location.Module{}, false, err
	}
	mloc, isModule := h.Location().(location.Module)
	if !isModule || !location.Equal(mloc.Parent(), parent) {
		return location.Module{}, false, nil
	}
	return mloc, true, nil
}

// ListLocationsForModules requires a module-oriented or output
// location; returns a single-element collection of the discovered set.
func (fm *FileManager) ListLocationsForModules(loc location.Location) ([][]location.Module, error) {
	if err := requireModuleOrientedOrOutput(loc, "list_locations_for_modules"); err != nil {
		return nil, err
	}
	mods, err := fm.repo.ListLocationsForModules(loc)
	if err != nil {
		return nil, err
	}
	return [][]location.Module{mods}, nil
}

// GetServiceLoader resolves a Loader over whichever group is registered
// at loc, failing with not-found if none is; the caller then calls
// Loader.Providers(service) to resolve a specific service interface.
func (fm *FileManager) GetServiceLoader(loc location.Location) (*classloader.Loader, error) {
	g := fm.repo.GetGroup(loc)
	switch v := g.(type) {
	case *group.PackageGroup:
		return v.ClassLoader()
	case nil:
		return nil, javafserr.NewNotFound(loc.Name())
	default:
		return nil, javafserr.NewIllegalInput(loc.Name(), "get_service_loader requires a package-oriented group at this location")
	}
}

// Contains reports whether h is registered under loc; false if loc is
// unregistered.
func (fm *FileManager) Contains(loc location.Location, h filehandle.Handle) bool {
	g, ok := fm.repo.GetPackageOrientedGroup(loc)
	if ok {
		return g.Contains(h)
	}
	if out, err := fm.repo.GetOutputGroup(loc); err == nil && out != nil {
		return out.Contains(h)
	}
	return false
}

// IsSameFile reports whether a and b are both present and denote the
// same underlying file.
func IsSameFile(a, b *filehandle.Handle) bool {
	if a == nil || b == nil {
		return false
	}
	return filehandle.Equal(*a, *b)
}

// HandleOption always reports false: this facade consumes no
// compiler-driver options.
func (fm *FileManager) HandleOption(name string, arguments []string) bool { return false }

// IsSupportedOption always reports -1 (unknown, takes no argument).
func (fm *FileManager) IsSupportedOption(name string) int { return -1 }

// Flush is a no-op at this layer: containers write through immediately,
// there is no buffered state to flush.
func (fm *FileManager) Flush() error { return nil }

// Close delegates to the repository, closing every registered group.
func (fm *FileManager) Close() error {
	return fm.repo.Close()
}
