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
	"sync"

	"github.com/hashicorp/go-multierror"

	"javafs/container"
	"javafs/filehandle"
	"javafs/javafserr"
	"javafs/kind"
	"javafs/location"
	"javafs/pathroot"
)

// OutputGroup combines a package-oriented group (at most one writable
// container — the contract for an output location's "legacy" package
// side) with a module-oriented group over the same location.
type OutputGroup struct {
	loc location.Location

	mu      sync.Mutex
	pkgSide *PackageGroup // nil until the first package-side container is added
	modSide *ModuleGroup
}

// NewOutputGroup creates an empty group for loc. loc must be an output
// location.
func NewOutputGroup(loc location.Location) *OutputGroup {
	if !loc.Output() {
		panic("group: OutputGroup requires an output location")
	}
	return &OutputGroup{loc: loc, modSide: NewModuleGroup(loc)}
}

func (g *OutputGroup) Location() location.Location { return g.loc }

// AddPackageContainer installs c as the single legacy output container.
// A second call fails loudly: an output location's package side may
// hold only one writable root by contract (§9's open question resolved
// against "fail loudly", not silent replacement or a guessed merge).
func (g *OutputGroup) AddPackageContainer(release int, c container.Container) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pkgSide != nil {
		return javafserr.NewIllegalInput(g.loc.Name(), "an output location may hold only one writable package-side container")
	}
	g.pkgSide = NewPackageGroup(g.loc, release)
	g.pkgSide.AddContainer(c)
	return nil
}

// AddPackageRoot wraps root and installs it as above.
func (g *OutputGroup) AddPackageRoot(release int, root pathroot.Root) (container.Container, error) {
	g.mu.Lock()
	if g.pkgSide != nil {
		g.mu.Unlock()
		return nil, javafserr.NewIllegalInput(g.loc.Name(), "an output location may hold only one writable package-side container")
	}
	g.pkgSide = NewPackageGroup(g.loc, release)
	g.mu.Unlock()
	return g.pkgSide.AddRoot(root)
}

func (g *OutputGroup) packageSide() *PackageGroup {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pkgSide
}

// ModuleSide exposes the module-oriented half, for the module-addressed
// operations (add_module, get_module, get_or_create_module, …).
func (g *OutputGroup) ModuleSide() *ModuleGroup { return g.modSide }

func (g *OutputGroup) Contains(h filehandle.Handle) bool {
	if pkg := g.packageSide(); pkg != nil && pkg.Contains(h) {
		return true
	}
	for _, sub := range g.modSide.Modules() {
		if sub.Contains(h) {
			return true
		}
	}
	return false
}

func (g *OutputGroup) InferBinaryName(h filehandle.Handle) (string, bool) {
	if pkg := g.packageSide(); pkg != nil {
		if name, ok := pkg.InferBinaryName(h); ok {
			return name, true
		}
	}
	for _, sub := range g.modSide.Modules() {
		if name, ok := sub.InferBinaryName(h); ok {
			return name, true
		}
	}
	return "", false
}

func (g *OutputGroup) GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	side := g.packageSide()
	if side == nil {
		return filehandle.Handle{}, false, nil
	}
	return side.GetFileForOutput(pkg, relativeName)
}

func (g *OutputGroup) GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	side := g.packageSide()
	if side == nil {
		return filehandle.Handle{}, false, nil
	}
	return side.GetJavaFileForOutput(binaryName, k)
}

// Close closes both sides, aggregating failures.
func (g *OutputGroup) Close() error {
	var result *multierror.Error
	if side := g.packageSide(); side != nil {
		if err := side.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := g.modSide.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if result == nil {
		return nil
	}
	return result
}
