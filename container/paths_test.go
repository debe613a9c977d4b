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
	"testing"

	"javafs/kind"
)

func TestBinaryToPackage(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"com.foo.Bar", "com.foo"},
		{"Bar", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := BinaryToPackage(tc.in); got != tc.want {
			t.Errorf("BinaryToPackage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBinaryToSimple(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"com.foo.Bar", "Bar"},
		{"Bar", "Bar"},
	}
	for _, tc := range testCases {
		if got := BinaryToSimple(tc.in); got != tc.want {
			t.Errorf("BinaryToSimple(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBinaryToPath(t *testing.T) {
	got, err := BinaryToPath("/out", "com.foo.Bar", kind.Class)
	if err != nil {
		t.Fatal(err)
	}
	if want := "/out/com/foo/Bar.class"; got != want {
		t.Errorf("BinaryToPath() = %q, want %q", got, want)
	}
}

func TestPackageToPath(t *testing.T) {
	got, err := PackageToPath("/out", "com.foo")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/out/com/foo"; got != want {
		t.Errorf("PackageToPath() = %q, want %q", got, want)
	}
}

func TestResourceToPathRootRelative(t *testing.T) {
	got, err := ResourceToPath("/out", "com.foo", "/META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/out/META-INF/MANIFEST.MF"; got != want {
		t.Errorf("ResourceToPath() = %q, want %q", got, want)
	}
}

func TestResourceToPathPackageRelative(t *testing.T) {
	got, err := ResourceToPath("/out", "com.foo", "resource.txt")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/out/com/foo/resource.txt"; got != want {
		t.Errorf("ResourceToPath() = %q, want %q", got, want)
	}
}

func TestRejectAbsoluteFragment(t *testing.T) {
	testCases := []string{"/abs", "..", "../escape", `C:\windows`}
	for _, p := range testCases {
		if _, err := PackageToPath("/out", p); err == nil {
			t.Errorf("PackageToPath(%q) should reject an absolute/escaping package name", p)
		}
	}
}
