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

// Package classloader models the compiler-host's "class loader over the
// resolved classpath" in terms this Go stack can actually execute: it
// does not load bytecode, but it does answer the one thing the compiler
// driver actually needs a class loader for in practice — resolving
// service-provider lists via the same META-INF/services/<interface>
// convention java.util.ServiceLoader itself uses.
package classloader

import (
	"bufio"
	"io/fs"
	"strings"
)

// Container is the narrow slice of container.Container a Loader needs:
// a readable filesystem view, in lookup order.
type Container interface {
	FS() fs.FS
}

// Loader resolves service-provider names across an ordered list of
// containers, first-registered first, aggregating (not first-match)
// across all of them — matching java.util.ServiceLoader's own
// classpath-wide aggregation behaviour.
type Loader struct {
	containers []Container
}

// New builds a Loader bound to containers's current order. Loader is an
// immutable snapshot: PackageContainerGroup is responsible for
// rebuilding a new Loader when its container list changes (§4.4: "list
// mutation after first access invalidates and rebuilds on next access").
func New(containers []Container) *Loader {
	snapshot := make([]Container, len(containers))
	copy(snapshot, containers)
	return &Loader{containers: snapshot}
}

// Providers returns every provider class name registered for
// serviceInterface (e.g. "javax.annotation.processing.Processor") across
// all containers, in container order, de-duplicated, skipping comment
// and blank lines per the META-INF/services file format.
func (l *Loader) Providers(serviceInterface string) ([]string, error) {
	name := "META-INF/services/" + serviceInterface
	seen := make(map[string]bool)
	var providers []string
	for _, c := range l.containers {
		lines, err := readServiceFile(c.FS(), name)
		if err != nil {
			continue // a container without this service file is normal, not an error
		}
		for _, line := range lines {
			if seen[line] {
				continue
			}
			seen[line] = true
			providers = append(providers, line)
		}
	}
	return providers, nil
}

func readServiceFile(filesystem fs.FS, name string) ([]string, error) {
	f, err := filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
