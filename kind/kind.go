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

// Package kind classifies the files a compiler file manager cares about.
package kind

import "strings"

// Kind tags the category of a file the file manager deals in.
type Kind int

const (
	Source Kind = iota
	Class
	Html
	Other
)

// Extension returns the canonical filename extension for k, including the
// leading dot. Other has no canonical extension.
func (k Kind) Extension() string {
	switch k {
	case Source:
		return ".java"
	case Class:
		return ".class"
	case Html:
		return ".html"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Source:
		return "SOURCE"
	case Class:
		return "CLASS"
	case Html:
		return "HTML"
	default:
		return "OTHER"
	}
}

// All is every kind. It is not sorted by extension length: FromFilename
// orders a copy of it longest-extension-first itself, so that the longest
// candidate extension is tried before a shorter one that could otherwise
// match a false subset (e.g. ".html" must be tried before a hypothetical
// ".ht").
var All = []Kind{Html, Class, Source, Other}

// FromFilename infers the Kind of name from its suffix, trying extensions
// longest-first. Returns Other if no known extension matches.
func FromFilename(name string) Kind {
	candidates := make([]Kind, 0, len(All))
	candidates = append(candidates, All...)
	// Longest extension first: among the concrete kinds (Other excluded,
	// since its extension is empty and would match everything).
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if len(candidates[j].Extension()) > len(candidates[i].Extension()) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}
	for _, k := range candidates {
		ext := k.Extension()
		if ext == "" {
			continue
		}
		if strings.HasSuffix(name, ext) {
			return k
		}
	}
	return Other
}
