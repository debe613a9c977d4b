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
	"os"
	"sync"
	"testing"

	"javafs/location"
)

func TestGetOrCreateModuleIsIdempotent(t *testing.T) {
	g := NewModuleGroup(location.ModuleSourcePath)
	a := g.GetOrCreateModule("com.example.app", 17)
	b := g.GetOrCreateModule("com.example.app", 17)
	if a != b {
		t.Error("GetOrCreateModule should return the same sub-group for the same name")
	}
}

func TestGetOrCreateModuleConcurrentCallersShareTheSubGroup(t *testing.T) {
	g := NewModuleGroup(location.ModuleSourcePath)
	const n = 50
	results := make([]*PackageGroup, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i] = g.GetOrCreateModule("com.example.app", 17)
		}()
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent GetOrCreateModule calls returned different sub-groups")
		}
	}
}

func TestModuleGroupPanicsOnInvalidLocation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewModuleGroup(ClassPath) should panic: not module-oriented or output")
		}
	}()
	NewModuleGroup(location.ClassPath)
}

func TestAddDiscoveredRootRegistersFoundModules(t *testing.T) {
	dir := t.TempDir()
	writeModuleInfo(t, dir+"/module-info.java", "com.example.app")

	g := NewModuleGroup(location.ModuleSourcePath)
	root := mustDiskRoot(t, dir)
	found, err := g.AddDiscoveredRoot(17, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "com.example.app" {
		t.Fatalf("AddDiscoveredRoot found %+v, want one module named com.example.app", found)
	}
	if _, ok := g.GetModule("com.example.app"); !ok {
		t.Error("discovered module should be registered under its own name")
	}
}

func writeModuleInfo(t *testing.T, path, name string) {
	t.Helper()
	content := "module " + name + " {\n}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocationsForModules(t *testing.T) {
	g := NewModuleGroup(location.ModulePath)
	g.GetOrCreateModule("a", 17)
	g.GetOrCreateModule("b", 17)
	locs := g.LocationsForModules()
	if len(locs) != 2 {
		t.Fatalf("LocationsForModules() = %v, want 2 entries", locs)
	}
}
