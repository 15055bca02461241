/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixProject  = "proj"
	PrefixDocument = "doc"
	PrefixPage     = "page"
	PrefixLayer    = "layer"
	PrefixShape    = "shape"
	PrefixPoint    = "pt"
	PrefixStyle    = "style"
	PrefixLibrary  = "lib"
	PrefixSegment  = "seg"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewProjectID() string  { return New(PrefixProject) }
func NewDocumentID() string { return New(PrefixDocument) }
func NewPageID() string     { return New(PrefixPage) }
func NewLayerID() string    { return New(PrefixLayer) }
func NewShapeID() string    { return New(PrefixShape) }
func NewPointID() string    { return New(PrefixPoint) }
func NewStyleID() string    { return New(PrefixStyle) }
func NewLibraryID() string  { return New(PrefixLibrary) }
func NewSegmentID() string  { return New(PrefixSegment) }

// Prefix returns the type prefix of id.
func Prefix(id string) (string, error) {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	return parsed.Prefix(), nil
}

func Validate(id, expectedPrefix string) error {
	prefix, err := Prefix(id)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, prefix, id)
	}
	return nil
}
