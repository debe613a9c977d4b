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

package pathroot

import (
	"archive/zip"
	"io/fs"
)

// Archive is a Root over the interior of a ZIP/JAR/WAR file. It owns the
// underlying zip.ReadCloser: closing the Archive closes the archive file
// handle, and the Container that opened it implicitly is responsible for
// calling Close.
type Archive struct {
	archivePath string
	parent      Root
	rc          *zip.ReadCloser
}

// OpenArchive opens the zip-format archive at archivePath and returns an
// Archive Root over its interior. parent is the Root the archive file
// itself lives under (e.g. the classpath disk directory containing
// lib.jar), used only for Parent() and not for closing.
func OpenArchive(archivePath string, parent Root) (*Archive, error) {
	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	return &Archive{archivePath: archivePath, parent: parent, rc: rc}, nil
}

func (a *Archive) Path() string { return a.archivePath }

func (a *Archive) URI() string {
	return "jar:file://" + a.archivePath + "!/"
}

func (a *Archive) Parent() (Root, bool) {
	if a.parent == nil {
		return nil, false
	}
	return a.parent, true
}

// FS exposes the archive's interior; zip.Reader implements fs.FS
// natively, so no adapter is required.
func (a *Archive) FS() fs.FS { return &a.rc.Reader }

// Close releases the underlying archive file handle. Safe to call once;
// the owning container only ever calls it once (§5: "close every
// resource once").
func (a *Archive) Close() error {
	return a.rc.Close()
}
