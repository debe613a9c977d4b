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
	"javafs/location"
	"javafs/modulefinder"
	"javafs/pathroot"
)

// ModuleGroup maps module name to a dedicated PackageGroup. Each slot
// goes absent → present and is never deleted once created within a run.
// get_or_create_module serialises concurrent callers for the same name
// so they observe the same sub-group.
type ModuleGroup struct {
	loc location.Location

	mu      sync.Mutex
	modules map[string]*PackageGroup
}

// NewModuleGroup creates an empty group for loc. loc must be
// module-oriented or an output location.
func NewModuleGroup(loc location.Location) *ModuleGroup {
	if !loc.ModuleOriented() && !loc.Output() {
		panic("group: ModuleGroup requires a module-oriented or output location")
	}
	return &ModuleGroup{loc: loc, modules: make(map[string]*PackageGroup)}
}

func (g *ModuleGroup) Location() location.Location { return g.loc }

// GetOrCreateModule idempotently creates name's sub-group, whose
// location is location.Module{parent: g.loc, name: name}.
func (g *ModuleGroup) GetOrCreateModule(name string, release int) *PackageGroup {
	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.modules[name]; ok {
		return existing
	}
	sub := NewPackageGroup(location.NewModule(g.loc, name), release)
	g.modules[name] = sub
	return sub
}

// GetModule looks up name without creating it.
func (g *ModuleGroup) GetModule(name string) (*PackageGroup, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sub, ok := g.modules[name]
	return sub, ok
}

// AddModule delegates to GetOrCreateModule(name).AddContainer(c).
func (g *ModuleGroup) AddModule(name string, release int, c container.Container) {
	g.GetOrCreateModule(name, release).AddContainer(c)
}

// AddModuleRoot delegates to GetOrCreateModule(name).AddRoot(root).
func (g *ModuleGroup) AddModuleRoot(name string, release int, root pathroot.Root) (container.Container, error) {
	return g.GetOrCreateModule(name, release).AddRoot(root)
}

// AddDiscoveredRoot runs the module discoverer (C3) against root and, for
// each descriptor it could confidently parse, adds root to that named
// module's sub-group, auto-creating it. This is the path the repository
// takes for Repository.AddPath on a module-oriented location where the
// caller hands over a bare root rather than a pre-named module path
// (e.g. a module-source-path directory or a modular JAR on the module
// path) — discovery never raises, so an unparsable root simply
// contributes no modules.
func (g *ModuleGroup) AddDiscoveredRoot(release int, root pathroot.Root) ([]modulefinder.Module, error) {
	found := modulefinder.Find(root.FS(), nil)
	for _, m := range found {
		if _, err := g.AddModuleRoot(m.Name, release, root); err != nil {
			return found, err
		}
	}
	return found, nil
}

// LocationsForModules returns the set of ModuleLocations currently
// known. Iteration order is unspecified by design (§5: "module
// enumeration... returns an unordered set").
func (g *ModuleGroup) LocationsForModules() []location.Module {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]location.Module, 0, len(g.modules))
	for name := range g.modules {
		out = append(out, location.NewModule(g.loc, name))
	}
	return out
}

// Modules yields each known (name, *PackageGroup) pair. Iteration order
// is unspecified.
func (g *ModuleGroup) Modules() map[string]*PackageGroup {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]*PackageGroup, len(g.modules))
	for k, v := range g.modules {
		out[k] = v
	}
	return out
}

// Close propagates to every module sub-group, aggregating failures.
func (g *ModuleGroup) Close() error {
	g.mu.Lock()
	subs := make([]*PackageGroup, 0, len(g.modules))
	for _, sub := range g.modules {
		subs = append(subs, sub)
	}
	g.modules = make(map[string]*PackageGroup)
	g.mu.Unlock()

	var result *multierror.Error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}
