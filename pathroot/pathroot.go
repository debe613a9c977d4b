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

// Package pathroot implements PathRoot: the uniform handle over a
// directory root (on-disk, inside an archive, or an in-memory scratch
// filesystem) that containers are built on top of.
package pathroot

import (
	"fmt"
	"io/fs"
)

// Root is a uniform handle over a directory root with a file-system
// identity. Equality between two Roots is URI-based (see Equal).
//
// The core never closes a Root it did not open itself; an archive or
// in-memory Root opened implicitly by a container is owned by that
// container and closed when the container closes.
type Root interface {
	// Path returns the root's canonical on-disk (or virtual) path.
	Path() string
	// URI returns the root's URI. Two Roots are the same file-system
	// identity iff their URIs are equal.
	URI() string
	// Parent returns the enclosing Root, if this Root was derived from
	// one (e.g. an archive interior root derived from the disk root
	// holding the archive file).
	Parent() (Root, bool)
	// FS exposes the root's contents as a standard io/fs.FS for walking
	// and reading. Archive and in-memory roots always return non-nil;
	// disk roots return an os.DirFS-equivalent view.
	FS() fs.FS
}

// Equal reports whether a and b have the same file-system identity.
func Equal(a, b Root) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.URI() == b.URI()
}

// Closer is implemented by Roots that hold resources needing an explicit
// release (archive handles, in-memory filesystem stores). Roots without
// state to release (disk roots) do not implement Closer.
type Closer interface {
	Close() error
}

func fmtURI(scheme, path string) string {
	return fmt.Sprintf("%s://%s", scheme, path)
}
