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

// Package filehandle implements the compiler's path file object: a
// (location, root-path, full-path) tuple with no shared cache — a new
// Handle is created on each lookup, and handles over the same URI are
// interchangeable.
package filehandle

import (
	"path"
	"strings"

	"javafs/kind"
	"javafs/location"
)

// Handle is a discovered or to-be-written file, addressed relative to
// the container that produced it.
type Handle struct {
	loc      location.Location
	rootPath string // the owning container's root, slash-separated
	fullPath string // this file's path, slash-separated, same space as rootPath
	uri      string
	k        kind.Kind
}

// New constructs a Handle. rootPath and fullPath are slash-separated
// paths in the same namespace as the container that owns them (for a
// disk container, OS paths normalised to slashes; for an archive
// container, paths interior to the zip). uri is the handle's full URI,
// computed by the caller from the owning Root (e.g. "file:///a/p/X.class"
// or "jar:file:///lib.jar!/p/X.class").
func New(loc location.Location, rootPath, fullPath, uri string) Handle {
	return Handle{
		loc:      loc,
		rootPath: cleanOrEmpty(rootPath),
		fullPath: path.Clean(fullPath),
		uri:      uri,
		k:        kind.FromFilename(fullPath),
	}
}

// cleanOrEmpty is path.Clean except it leaves "" as "", since an empty
// root path is meaningful here (it denotes "the archive interior root"),
// whereas path.Clean("") normally yields ".".
func cleanOrEmpty(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

func (h Handle) Location() location.Location { return h.loc }
func (h Handle) RootPath() string            { return h.rootPath }
func (h Handle) FullPath() string            { return h.fullPath }
func (h Handle) Kind() kind.Kind             { return h.k }

// URI identifies this handle's underlying file. Two handles over the
// same URI are interchangeable (same-file identity).
func (h Handle) URI() string { return h.uri }

// Equal reports whether a and b refer to the same underlying file.
func Equal(a, b Handle) bool { return a.uri == b.uri }

// within reports whether fullPath is rootPath or a descendant of it. An
// empty rootPath denotes an archive's interior root: every non-escaping
// interior path is "within" it by construction.
func within(rootPath, fullPath string) bool {
	if rootPath == "" {
		return !strings.HasPrefix(fullPath, "../") && fullPath != ".."
	}
	if rootPath == fullPath {
		return true
	}
	prefix := rootPath
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(fullPath, prefix)
}

// InferBinaryName derives the Java binary name for h, iff h.fullPath is
// within h.rootPath: the extension is dropped and each remaining path
// segment joined with ".". Returns false when fullPath escapes rootPath
// (e.g. a path under a different container's root) or is rootPath
// itself, matching Container.infer_binary_name's null-on-escape contract.
func (h Handle) InferBinaryName() (string, bool) {
	if !within(h.rootPath, h.fullPath) {
		return "", false
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(h.fullPath, h.rootPath), "/")
	rel = stripMultiReleasePrefix(rel)
	if rel == "" {
		return "", false
	}
	rel = strings.TrimSuffix(rel, h.k.Extension())
	segments := strings.Split(rel, "/")
	return strings.Join(segments, "."), true
}

// stripMultiReleasePrefix removes a leading "META-INF/versions/N/" from
// rel, so that a multi-release overlay hit still infers the same binary
// name as its default-root counterpart.
func stripMultiReleasePrefix(rel string) string {
	const prefix = "META-INF/versions/"
	if !strings.HasPrefix(rel, prefix) {
		return rel
	}
	after := rel[len(prefix):]
	slash := strings.IndexByte(after, '/')
	if slash < 0 {
		return rel
	}
	release := after[:slash]
	for _, c := range release {
		if c < '0' || c > '9' {
			return rel
		}
	}
	return after[slash+1:]
}
