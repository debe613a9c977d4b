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
	"path"
	"strings"

	"javafs/javafserr"
	"javafs/kind"
)

// BinaryToPackage returns the substring of binary before its last ".",
// or "" if binary has no package component.
func BinaryToPackage(binary string) string {
	i := strings.LastIndexByte(binary, '.')
	if i < 0 {
		return ""
	}
	return binary[:i]
}

// BinaryToSimple returns the substring of binary after its last ".", or
// the whole string if binary has no package component.
func BinaryToSimple(binary string) string {
	i := strings.LastIndexByte(binary, '.')
	if i < 0 {
		return binary
	}
	return binary[i+1:]
}

// BinaryToPath resolves binary's package segments as directories under
// root, then appends simpleName+kind.Extension().
func BinaryToPath(root, binary string, k kind.Kind) (string, error) {
	if err := rejectAbsolute(binary); err != nil {
		return "", err
	}
	pkg := BinaryToPackage(binary)
	simple := BinaryToSimple(binary)
	dir, err := PackageToPath(root, pkg)
	if err != nil {
		return "", err
	}
	return path.Join(dir, simple+k.Extension()), nil
}

// PackageToPath resolves pkg's "."-separated segments under root.
func PackageToPath(root, pkg string) (string, error) {
	if err := rejectAbsolute(pkg); err != nil {
		return "", err
	}
	if pkg == "" {
		return root, nil
	}
	segments := strings.Split(pkg, ".")
	return path.Join(append([]string{root}, segments...)...), nil
}

// ResourceToPath resolves (pkg, relative) to a path under root. If
// relative begins with "/" it is root-relative and pkg is ignored;
// otherwise pkg is resolved under root and relative's "/"-separated
// segments are resolved under that.
func ResourceToPath(root, pkg, relative string) (string, error) {
	if strings.HasPrefix(relative, "/") {
		rel := strings.TrimPrefix(relative, "/")
		if err := rejectAbsolute(rel); err != nil {
			return "", err
		}
		return path.Join(root, rel), nil
	}
	if err := rejectAbsolute(relative); err != nil {
		return "", err
	}
	dir, err := PackageToPath(root, pkg)
	if err != nil {
		return "", err
	}
	return path.Join(dir, relative), nil
}

// rejectAbsolute reports an error if p looks like an absolute path
// (leading "/", a Windows drive letter, or a ".." escape) — callers
// must never pass these to the package/relative conversion helpers.
func rejectAbsolute(p string) error {
	if p == "" {
		return nil
	}
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if strings.HasPrefix(clean, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return javafserr.NewIllegalInput(p, "not a package-relative name (absolute or escaping)")
	}
	if len(p) >= 2 && p[1] == ':' {
		return javafserr.NewIllegalInput(p, "looks like an absolute Windows path")
	}
	return nil
}
