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
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/sirupsen/logrus"
)

// Mem is a Root backed by an in-memory scratch filesystem. It has no
// natural on-disk path, so its identity is a synthetic, stable UUID URI.
//
// Mem registers a finalizer so the backing store is released if it
// becomes unreachable without an explicit Close — "phantom reachability
// cleanup" per the data model's PathRoot lifetime rule. The finalizer
// runs off the garbage collector's reclamation goroutine, is safe to
// race with an explicit Close (guarded by once), and never panics
// or blocks it: any error is logged and swallowed.
type Mem struct {
	id     uuid.UUID
	fs     *mem.FS
	log    *logrus.Logger
	closed int32
	once   sync.Once
	// disableFinalizer supports deterministic tests that want to drive
	// cleanup explicitly rather than waiting on the garbage collector.
	disableFinalizer bool
}

// MemOption configures a new Mem root.
type MemOption func(*Mem)

// WithLogger overrides the logger used to report swallowed phantom
// cleanup failures. Defaults to logrus.StandardLogger().
func WithLogger(l *logrus.Logger) MemOption {
	return func(m *Mem) { m.log = l }
}

// WithoutFinalizer disables the finalizer registration, for tests that
// want to call Close deterministically and assert on it without waiting
// on garbage collection.
func WithoutFinalizer() MemOption {
	return func(m *Mem) { m.disableFinalizer = true }
}

// NewMem creates a fresh, empty in-memory scratch Root.
func NewMem(opts ...MemOption) (*Mem, error) {
	backing, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	m := &Mem{id: uuid.New(), fs: backing, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(m)
	}
	if !m.disableFinalizer {
		runtime.SetFinalizer(m, (*Mem).finalize)
	}
	return m, nil
}

func (m *Mem) Path() string { return "/" }

func (m *Mem) URI() string { return "mem://" + m.id.String() + "/" }

func (m *Mem) Parent() (Root, bool) { return nil, false }

func (m *Mem) FS() fs.FS { return m.fs }

// MkdirAll creates dir and any missing parents inside the scratch store.
func (m *Mem) MkdirAll(dir string, perm fs.FileMode) error {
	if dir == "" || dir == "." {
		return nil
	}
	return hackpadfs.MkdirAll(m.fs, dir, perm)
}

// WriteFile writes data to name inside the scratch store, creating or
// truncating it, and creating any missing parent directories first.
func (m *Mem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := hackpadfs.OpenFile(m.fs, name, hackpadfs.FlagReadWrite|hackpadfs.FlagCreate|hackpadfs.FlagTruncate, perm)
	if err != nil {
		return err
	}
	defer f.Close()
	w, ok := f.(hackpadfs.WriterFile)
	if !ok {
		return fs.ErrInvalid
	}
	_, err = w.Write(data)
	return err
}

// Close marks the root closed and removes its finalizer. Safe to call
// more than once; only the first call does any work. The in-memory store
// itself is not cleared: the garbage collector reclaims it once nothing
// references the root.
func (m *Mem) Close() error {
	var err error
	m.once.Do(func() {
		atomic.StoreInt32(&m.closed, 1)
		runtime.SetFinalizer(m, nil)
	})
	return err
}

func (m *Mem) finalize() {
	defer func() {
		if r := recover(); r != nil {
			m.log.WithFields(logrus.Fields{"root": m.URI(), "recovered": r}).Warn("panic during phantom cleanup of in-memory root, swallowed")
		}
	}()
	if atomic.LoadInt32(&m.closed) != 0 {
		return
	}
	if err := m.Close(); err != nil {
		m.log.WithFields(logrus.Fields{"root": m.URI(), "error": err}).Warn("phantom cleanup of in-memory root failed, swallowed")
	}
}
