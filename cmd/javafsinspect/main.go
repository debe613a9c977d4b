// Copyright 2018 Google Inc. All rights reserved.
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

// Command javafsinspect mounts a workspace of classpath/module-path/
// source-path/output roots from flags and prints the lookups a compiler
// driver would make against it. A debugging/demo entry point, not part
// of the library contract.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"javafs/filehandle"
	"javafs/filemanager"
	"javafs/kind"
	"javafs/location"
	"javafs/pathroot"
)

var (
	classPath  multiFlag
	modulePath multiFlag
	sourcePath multiFlag
	outputDir  = flag.String("d", "", "class output directory")
	release    = flag.Int("release", 17, "effective Java release")
	pkg        = flag.String("p", "", "package to list")
)

func init() {
	flag.Var(&classPath, "cp", "classpath entry (repeatable): directory or .jar/.zip/.war")
	flag.Var(&modulePath, "mp", "module-path entry (repeatable)")
	flag.Var(&sourcePath, "sourcepath", "source-path entry (repeatable)")
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(s string) error {
	*m = append(*m, s)
	return nil
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "javafsinspect:", err)
		os.Exit(1)
	}
}

func rootFor(p string) (pathroot.Root, error) {
	lower := strings.ToLower(p)
	if strings.HasSuffix(lower, ".jar") || strings.HasSuffix(lower, ".zip") || strings.HasSuffix(lower, ".war") {
		parent, err := pathroot.NewDisk(filepath.Dir(p))
		if err != nil {
			return nil, err
		}
		return pathroot.OpenArchive(p, parent)
	}
	return pathroot.NewDisk(p)
}

func mount(fm *filemanager.FileManager, loc location.Location, paths []string) {
	for _, p := range paths {
		root, err := rootFor(p)
		must(err)
		must(fm.AddPath(loc, root))
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: javafsinspect [-cp path]... [-mp path]... [-sourcepath path]... [-d dir] [-release N] [-p package]")
		flag.PrintDefaults()
	}
	flag.Parse()

	fm := filemanager.New(*release)
	mount(fm, location.ClassPath, classPath)
	mount(fm, location.ModulePath, modulePath)
	mount(fm, location.SourcePath, sourcePath)

	if *outputDir != "" {
		root, err := pathroot.NewDisk(*outputDir)
		must(err)
		must(fm.AddPath(location.ClassOutput, root))
	}

	if *pkg != "" {
		err := fm.List(location.ClassPath, *pkg, []kind.Kind{kind.Class}, false, func(h filehandle.Handle) {
			fmt.Println(h.URI())
		})
		must(err)
	}

	for _, loc := range []location.Location{location.ClassPath, location.ModulePath, location.SourcePath, location.ClassOutput} {
		fmt.Printf("%s: present=%v\n", loc.Name(), fm.HasLocation(loc))
	}

	must(fm.Close())
}
