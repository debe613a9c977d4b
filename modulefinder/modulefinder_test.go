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

package modulefinder

import (
	"testing"
	"testing/fstest"
)

func TestFindSourceDescriptor(t *testing.T) {
	root := fstest.MapFS{
		"module-info.java": &fstest.MapFile{Data: []byte("module com.example.app {\n  requires java.base;\n}\n")},
	}
	found := Find(root, nil)
	if len(found) != 1 {
		t.Fatalf("Find() returned %d modules, want 1", len(found))
	}
	if found[0].Name != "com.example.app" {
		t.Errorf("Name = %q, want com.example.app", found[0].Name)
	}
}

func TestFindOpenSourceDescriptor(t *testing.T) {
	root := fstest.MapFS{
		"module-info.java": &fstest.MapFile{Data: []byte("open module com.example.app {\n}\n")},
	}
	found := Find(root, nil)
	if len(found) != 1 || found[0].Name != "com.example.app" {
		t.Fatalf("Find() = %+v, want one module named com.example.app", found)
	}
}

func TestFindMalformedSourceDescriptorSkipped(t *testing.T) {
	root := fstest.MapFS{
		"module-info.java": &fstest.MapFile{Data: []byte("this is not a module descriptor")},
	}
	found := Find(root, nil)
	if len(found) != 0 {
		t.Errorf("Find() = %+v, want no modules for an unparsable descriptor", found)
	}
}

func TestFindEmptyRoot(t *testing.T) {
	found := Find(fstest.MapFS{}, nil)
	if found != nil {
		t.Errorf("Find() on an empty root = %+v, want nil", found)
	}
}

func TestFindIgnoresNestedDescriptors(t *testing.T) {
	root := fstest.MapFS{
		"sub/module-info.java": &fstest.MapFile{Data: []byte("module nested.mod {}\n")},
	}
	found := Find(root, nil)
	if len(found) != 0 {
		t.Errorf("Find() should only scan the root's top level, got %+v", found)
	}
}

func TestParseModuleNameTruncatedInputNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0xCA, 0xFE, 0xBA, 0xBE},
		{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 0, 0, 5, 1, 0, 200},
	}
	for _, in := range inputs {
		if _, ok := parseModuleName(in); ok {
			t.Errorf("parseModuleName(%v) unexpectedly succeeded", in)
		}
	}
}

func TestLooksLikeModuleName(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"com.example.app", true},
		{"com/example/app", true},
		{"module-info", false},
		{"", false},
		{"has a space", false},
	}
	for _, tc := range testCases {
		if got := looksLikeModuleName(tc.in); got != tc.want {
			t.Errorf("looksLikeModuleName(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
