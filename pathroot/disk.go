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
	"io/fs"
	"os"
	"path/filepath"
)

// Disk is a Root backed by a directory on the real filesystem.
type Disk struct {
	abs    string
	parent Root
}

// NewDisk returns a Root rooted at dir. dir is made absolute and cleaned;
// it is not required to exist yet (output roots are frequently created
// before their first write).
func NewDisk(dir string) (*Disk, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Disk{abs: filepath.Clean(abs)}, nil
}

func (d *Disk) Path() string { return d.abs }

func (d *Disk) URI() string {
	p := filepath.ToSlash(d.abs)
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	return "file://" + p
}

func (d *Disk) Parent() (Root, bool) {
	if d.parent == nil {
		return nil, false
	}
	return d.parent, true
}

func (d *Disk) FS() fs.FS { return os.DirFS(d.abs) }

// ReadOnly reports whether the underlying directory rejects writes.
// A directory that does not exist yet is not read-only: callers may
// still create it on first write (§6: "create-directories on write").
func (d *Disk) ReadOnly() bool {
	info, err := os.Stat(d.abs)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 == 0
}
