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

// Package location models the closed set of location kinds the file
// manager partitions its virtual filesystem into: package-oriented input,
// module-oriented, output, and module-within-parent locations.
package location

import "fmt"

// Location is an opaque identity for a partition of the file manager's
// virtual filesystem (classpath, source path, module path, output sinks,
// module-source-path, etc).
type Location interface {
	// Name is the location's identifying name, e.g. "CLASS_PATH".
	Name() string
	// Output reports whether artefacts may be written to this location.
	Output() bool
	// ModuleOriented reports whether this location's contents are laid
	// out as per-module sub-locations rather than packages directly.
	ModuleOriented() bool
}

type simple struct {
	name           string
	output         bool
	moduleOriented bool
}

func (s simple) Name() string         { return s.name }
func (s simple) Output() bool         { return s.output }
func (s simple) ModuleOriented() bool { return s.moduleOriented }

// New creates a top-level location with the given output and
// module-oriented flags. It does not validate the combination; callers
// normally use one of the predefined Locations below instead of calling
// New directly.
func New(name string, output, moduleOriented bool) Location {
	return simple{name: name, output: output, moduleOriented: moduleOriented}
}

// Well-known locations, matching the compiler-host contract's standard
// set.
var (
	ClassPath        Location = New("CLASS_PATH", false, false)
	SourcePath       Location = New("SOURCE_PATH", false, false)
	AnnotationProc   Location = New("ANNOTATION_PROCESSOR_PATH", false, false)
	PlatformClassPath Location = New("PLATFORM_CLASS_PATH", false, false)

	ModulePath       Location = New("MODULE_PATH", false, true)
	ModuleSourcePath Location = New("MODULE_SOURCE_PATH", false, true)
	SystemModules    Location = New("SYSTEM_MODULES", false, true)

	ClassOutput  Location = New("CLASS_OUTPUT", true, false)
	SourceOutput Location = New("SOURCE_OUTPUT", true, false)
)

// Module is a derived location naming one module within a module-oriented
// or output parent location. It is never module-oriented itself.
type Module struct {
	parent Location
	name   string
}

// NewModule constructs a ModuleLocation for name within parent. parent
// must be module-oriented or an output location; violating that is a
// programming error and NewModule panics, mirroring the rest of this
// package's "invalid combination is a bug, not a runtime condition"
// policy for location construction.
func NewModule(parent Location, name string) Module {
	if parent == nil {
		panic("location: NewModule called with nil parent")
	}
	if _, ok := parent.(Module); ok {
		panic(fmt.Sprintf("location: %s: a module location cannot itself be a parent of a module location", parent.Name()))
	}
	if !parent.ModuleOriented() && !parent.Output() {
		panic(fmt.Sprintf("location: %s: module locations require a module-oriented or output parent", parent.Name()))
	}
	return Module{parent: parent, name: name}
}

func (m Module) Parent() Location   { return m.parent }
func (m Module) ModuleName() string { return m.name }

func (m Module) Name() string {
	return fmt.Sprintf("%s[%s]", m.parent.Name(), m.name)
}

func (m Module) Output() bool { return m.parent.Output() }

// ModuleOriented is always false: a module location addresses one
// module's packages directly, it does not itself contain further
// per-module sub-locations.
func (m Module) ModuleOriented() bool { return false }

// Equal reports whether m and other denote the same module location:
// equality is on (parent, moduleName), following the identity rule for
// ModuleLocation.
func (m Module) Equal(other Module) bool {
	return Equal(m.parent, other.parent) && m.name == other.name
}

// Equal reports whether a and b denote the same Location. Plain
// locations compare by name; module locations compare by (parent, name).
func Equal(a, b Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	ma, aIsModule := a.(Module)
	mb, bIsModule := b.(Module)
	if aIsModule != bIsModule {
		return false
	}
	if aIsModule {
		return ma.name == mb.name && Equal(ma.parent, mb.parent)
	}
	return a.Name() == b.Name()
}
