/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// MoveMode selects what MoveBy translates.
type MoveMode int

const (
	MovePoint MoveMode = iota
	MoveShape
)

func (m MoveMode) String() string {
	if m == MoveShape {
		return "shape"
	}
	return "point"
}

// ParseMoveMode accepts "point" or "shape".
func ParseMoveMode(s string) (MoveMode, bool) {
	switch s {
	case "point":
		return MovePoint, true
	case "shape":
		return MoveShape, true
	}
	return MovePoint, false
}

// Options carries the editing configuration read by spatial operations.
type Options struct {
	Notifier
	SnapToGrid       bool
	SnapX            float64
	SnapY            float64
	HitThreshold     float64
	MoveMode         MoveMode
	DefaultIsStroked bool
	DefaultIsFilled  bool
	DefaultFillRule  FillRule
	TryToConnect     bool
	DrawPoints       bool
}

// DefaultOptions mirrors the stock editor configuration.
func DefaultOptions() *Options {
	return &Options{
		SnapToGrid:       true,
		SnapX:            15,
		SnapY:            15,
		HitThreshold:     7,
		MoveMode:         MovePoint,
		DefaultIsStroked: true,
		DefaultFillRule:  FillEvenOdd,
	}
}

func (o *Options) SetSnapToGrid(v bool) {
	if o.SnapToGrid == v {
		return
	}
	o.SnapToGrid = v
	o.Notify("SnapToGrid")
}

func (o *Options) SetMoveMode(m MoveMode) {
	if o.MoveMode == m {
		return
	}
	o.MoveMode = m
	o.Notify("MoveMode")
}

func (o *Options) SetTryToConnect(v bool) {
	if o.TryToConnect == v {
		return
	}
	o.TryToConnect = v
	o.Notify("TryToConnect")
}

func (o *Options) SetDrawPoints(v bool) {
	if o.DrawPoints == v {
		return
	}
	o.DrawPoints = v
	o.Notify("DrawPoints")
}
