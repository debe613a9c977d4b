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

package container

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/blueprint/pathtools"

	"javafs/filehandle"
	"javafs/javafserr"
	"javafs/kind"
	"javafs/location"
	"javafs/modulefinder"
	"javafs/pathroot"
)

// Disk is a Container backed directly by a directory on the real
// filesystem.
type Disk struct {
	loc  location.Location
	root *pathroot.Disk
}

// NewDisk wraps root as a package-oriented Container for loc.
func NewDisk(loc location.Location, root *pathroot.Disk) *Disk {
	return &Disk{loc: mustLocation(loc), root: root}
}

func (d *Disk) readOnly() bool { return d.root.ReadOnly() }

func (d *Disk) toURI(full string) string {
	return "file://" + filepath.ToSlash(full)
}

func (d *Disk) Contains(h filehandle.Handle) bool {
	if h.RootPath() != filepath.ToSlash(d.root.Path()) {
		return false
	}
	return isRegularFile(osPath(h.FullPath()))
}

func (d *Disk) GetFile(fragments ...string) (string, bool, error) {
	resolved, err := joinFragments(d.root.Path(), fragments...)
	if err != nil {
		return "", false, err
	}
	if !isRegularFile(resolved) {
		return "", false, nil
	}
	return resolved, true, nil
}

func (d *Disk) GetFileForInput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	rootSlash := filepath.ToSlash(d.root.Path())
	rel, err := ResourceToPath("", pkg, relativeName)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	full := filepath.Join(d.root.Path(), filepath.FromSlash(rel))
	if !isRegularFile(full) {
		return filehandle.Handle{}, false, nil
	}
	return filehandle.New(d.loc, rootSlash, filepath.ToSlash(full), d.toURI(full)), true, nil
}

func (d *Disk) GetFileForOutput(pkg, relativeName string) (filehandle.Handle, bool, error) {
	if d.readOnly() {
		return filehandle.Handle{}, false, nil
	}
	rootSlash := filepath.ToSlash(d.root.Path())
	rel, err := ResourceToPath("", pkg, relativeName)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	full := filepath.Join(d.root.Path(), filepath.FromSlash(rel))
	return filehandle.New(d.loc, rootSlash, filepath.ToSlash(full), d.toURI(full)), true, nil
}

func (d *Disk) GetJavaFileForInput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	rootSlash := filepath.ToSlash(d.root.Path())
	rel, err := BinaryToPath("", binaryName, k)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	full := filepath.Join(d.root.Path(), filepath.FromSlash(rel))
	if !isRegularFile(full) {
		return filehandle.Handle{}, false, nil
	}
	return filehandle.New(d.loc, rootSlash, filepath.ToSlash(full), d.toURI(full)), true, nil
}

func (d *Disk) GetJavaFileForOutput(binaryName string, k kind.Kind) (filehandle.Handle, bool, error) {
	if d.readOnly() {
		return filehandle.Handle{}, false, nil
	}
	rootSlash := filepath.ToSlash(d.root.Path())
	rel, err := BinaryToPath("", binaryName, k)
	if err != nil {
		return filehandle.Handle{}, false, err
	}
	full := filepath.Join(d.root.Path(), filepath.FromSlash(rel))
	return filehandle.New(d.loc, rootSlash, filepath.ToSlash(full), d.toURI(full)), true, nil
}

func (d *Disk) InferBinaryName(h filehandle.Handle) (string, bool) {
	return h.InferBinaryName()
}

func (d *Disk) ListFilesByKind(pkg string, kinds []kind.Kind, recurse bool, sink func(filehandle.Handle)) error {
	rootSlash := filepath.ToSlash(d.root.Path())
	pkgDir, err := PackageToPath(d.root.Path(), pkg)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(pkgDir); statErr != nil || !info.IsDir() {
		return nil // missing package directory is not an error
	}

	for _, k := range kinds {
		ext := k.Extension()
		var pattern string
		if recurse {
			pattern = filepath.Join(pkgDir, "**", "*"+ext)
		} else {
			pattern = filepath.Join(pkgDir, "*"+ext)
		}
		result, err := pathtools.Glob(pattern, nil, pathtools.FollowSymlinks)
		if err != nil {
			return err
		}
		for _, match := range result.Matches {
			if ext == "" {
				// kind.Other has no canonical extension: only exclude
				// files that matched one of the other known kinds.
				if hasKnownExtension(match) {
					continue
				}
			}
			if !isRegularFile(match) {
				continue
			}
			sink(filehandle.New(d.loc, rootSlash, filepath.ToSlash(match), d.toURI(match)))
		}
	}
	return nil
}

func (d *Disk) ListAllFiles() ([]string, error) {
	result, err := pathtools.Glob(filepath.Join(d.root.Path(), "**", "*"), nil, pathtools.FollowSymlinks)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, match := range result.Matches {
		if isRegularFile(match) {
			files = append(files, match)
		}
	}
	return files, nil
}

func (d *Disk) ModuleFinder() (func() []modulefinder.Module, bool) {
	return func() []modulefinder.Module {
		return modulefinder.Find(d.root.FS(), nil)
	}, true
}

// Close releases nothing: a Disk container never opens resources of its
// own, it only borrows the os filesystem.
func (d *Disk) Close() error { return nil }

func (d *Disk) FS() fs.FS { return d.root.FS() }

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func osPath(slashPath string) string {
	return filepath.FromSlash(slashPath)
}

func joinFragments(root string, fragments ...string) (string, error) {
	for _, f := range fragments {
		if filepath.IsAbs(f) {
			return "", javafserr.NewIllegalInput(f, "GetFile fragments must be relative")
		}
	}
	return filepath.Join(append([]string{root}, fragments...)...), nil
}

func hasKnownExtension(name string) bool {
	for _, k := range kind.All {
		if ext := k.Extension(); ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
