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

// Package javafserr is the shared error taxonomy for the javafs stack:
// programming errors (illegal input) and not-found errors. Composite
// close failures have no type here; the group and repository layers
// aggregate them with go-multierror.
package javafserr

import "fmt"

// IllegalInput reports that a caller passed a location of the wrong
// kind, an absolute path where a relative one is required, a nil
// required argument, or attempted a combination the stack's invariants
// forbid (e.g. source-path + module-source-path co-existence). These
// surface to the caller untouched — they are never silently coerced.
type IllegalInput struct {
	// Subject is the offending location name, path fragment, or other
	// identifier worth naming in the message.
	Subject string
	Reason  string
}

func (e *IllegalInput) Error() string {
	return fmt.Sprintf("javafs: illegal input %q: %s", e.Subject, e.Reason)
}

// NewIllegalInput constructs an IllegalInput error.
func NewIllegalInput(subject, reason string) *IllegalInput {
	return &IllegalInput{Subject: subject, Reason: reason}
}

// NotFound reports that an operation (e.g. GetServiceLoader) targeted a
// location with no registered group.
type NotFound struct {
	Subject string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("javafs: not found: %s", e.Subject)
}

// NewNotFound constructs a NotFound error.
func NewNotFound(subject string) *NotFound {
	return &NotFound{Subject: subject}
}
