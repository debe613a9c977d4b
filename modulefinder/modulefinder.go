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

// Package modulefinder discovers Java module descriptors at the top
// level of a path root. Discovery never raises: malformed descriptors
// and I/O errors are swallowed and simply excluded from the result,
// matching the compiler's expectation that module discovery only
// reports what it could confidently find.
package modulefinder

import (
	"bufio"
	"encoding/binary"
	"io/fs"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Module is a discovered module-descriptor candidate.
type Module struct {
	Name       string
	Path       string
	Descriptor []byte
}

// Find scans the top level of root (via root.FS) for module-info.class
// and module-info.java descriptors and returns every one it could
// confidently parse. log receives debug-level notices for descriptors it
// had to skip; it never receives an error for this reason, since skipped
// descriptors are an expected, silent outcome per this package's
// contract, not a failure.
func Find(root fs.FS, log *logrus.Logger) []Module {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil
	}
	var found []Module
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch entry.Name() {
		case "module-info.class":
			if m, ok := readClassDescriptor(root, entry.Name(), log); ok {
				found = append(found, m)
			}
		case "module-info.java":
			if m, ok := readSourceDescriptor(root, entry.Name(), log); ok {
				found = append(found, m)
			}
		}
	}
	return found
}

// sourceModulePattern matches "module <dotted.name> {" allowing for an
// "open" modifier, loosely following javac's own grammar; it is not a
// full parser, since source-level module discovery only needs the name.
var sourceModulePattern = regexp.MustCompile(`(?m)^\s*(?:open\s+)?module\s+([A-Za-z_$][\w$.]*)\s*\{`)

func readSourceDescriptor(root fs.FS, name string, log *logrus.Logger) (Module, bool) {
	f, err := root.Open(name)
	if err != nil {
		log.WithFields(logrus.Fields{"path": name, "error": err}).Debug("module discovery: could not open module-info.java, skipping")
		return Module{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		log.WithFields(logrus.Fields{"path": name, "error": err}).Debug("module discovery: error reading module-info.java, skipping")
		return Module{}, false
	}
	text := sb.String()
	match := sourceModulePattern.FindStringSubmatch(text)
	if match == nil {
		log.WithFields(logrus.Fields{"path": name}).Debug("module discovery: module-info.java did not match expected grammar, skipping")
		return Module{}, false
	}
	return Module{Name: match[1], Path: name, Descriptor: []byte(text)}, true
}

// Class-file constant pool tags relevant to extracting a module's name
// from its module-info.class attribute, per the JVM class file format.
const (
	tagUTF8    = 1
	tagModule  = 19
	classMagic = 0xCAFEBABE
)

func readClassDescriptor(root fs.FS, name string, log *logrus.Logger) (Module, bool) {
	f, err := root.Open(name)
	if err != nil {
		log.WithFields(logrus.Fields{"path": name, "error": err}).Debug("module discovery: could not open module-info.class, skipping")
		return Module{}, false
	}
	defer f.Close()

	data, err := fs.ReadFile(root, name)
	if err != nil {
		log.WithFields(logrus.Fields{"path": name, "error": err}).Debug("module discovery: could not read module-info.class, skipping")
		return Module{}, false
	}
	moduleName, ok := parseModuleName(data)
	if !ok {
		log.WithFields(logrus.Fields{"path": name}).Debug("module discovery: could not locate a Module attribute name, skipping")
		return Module{}, false
	}
	return Module{Name: moduleName, Path: name, Descriptor: data}, true
}

// parseModuleName performs a minimal walk of a module-info.class's
// constant pool to recover the module name referenced by its Module
// attribute's first entry. It tolerates truncated or malformed input by
// returning ok=false rather than panicking; callers must never treat a
// false return as anything but "nothing found".
func parseModuleName(data []byte) (name string, ok bool) {
	defer func() {
		if recover() != nil {
			name, ok = "", false
		}
	}()
	if len(data) < 10 || binary.BigEndian.Uint32(data[0:4]) != classMagic {
		return "", false
	}
	constantPoolCount := int(binary.BigEndian.Uint16(data[8:10]))
	offset := 10
	utf8 := make(map[int]string, constantPoolCount)

	i := 1
	for i < constantPoolCount {
		if offset >= len(data) {
			return "", false
		}
		tag := data[offset]
		offset++
		switch tag {
		case tagUTF8:
			if offset+2 > len(data) {
				return "", false
			}
			length := int(binary.BigEndian.Uint16(data[offset : offset+2]))
			offset += 2
			if offset+length > len(data) {
				return "", false
			}
			utf8[i] = string(data[offset : offset+length])
			offset += length
		case 7, 20, 19, 8, 16, 15: // Class, Package, Module, String, MethodType, MethodHandle-ish single-ref entries
			offset += 2
			if tag == 15 {
				offset += 1
			}
		case 3, 4: // Integer, Float
			offset += 4
		case 5, 6: // Long, Double occupy two constant-pool slots
			offset += 8
			i++
		case 9, 10, 11, 12, 18: // Fieldref, Methodref, InterfaceMethodref, NameAndType, InvokeDynamic
			offset += 4
		default:
			return "", false
		}
		i++
	}
	// The module_name_index of the Module attribute is the first UTF8
	// entry shaped like a dotted/slash module identifier; scanning for
	// the first plausible candidate is sufficient here since this is a
	// best-effort discovery aid, not a verifier.
	for idx := 1; idx < constantPoolCount; idx++ {
		if s, found := utf8[idx]; found && looksLikeModuleName(s) {
			return strings.ReplaceAll(s, "/", "."), true
		}
	}
	return "", false
}

func looksLikeModuleName(s string) bool {
	if s == "" || s == "module-info" {
		return false
	}
	for _, r := range s {
		if !(r == '.' || r == '/' || r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
