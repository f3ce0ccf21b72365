// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geopath

import "github.com/golang/geo/r2"

// Verb identifies a path command.
type Verb uint8

const (
	MoveTo    Verb = iota // Start a new subpath
	LineTo                // Straight line from the current point
	ClosePath             // Line back to the subpath start
)

var verbNames = [...]string{
	MoveTo:    "MoveTo",
	LineTo:    "LineTo",
	ClosePath: "ClosePath",
}

// String returns the string representation of a Verb.
func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return "Unknown"
}

// svgLetters maps verbs to SVG path data letters.
var svgLetters = [...]byte{
	MoveTo:    'M',
	LineTo:    'L',
	ClosePath: 'Z',
}

// Command is a single path command. Point is unused for ClosePath.
type Command struct {
	Verb  Verb
	Point r2.Point
}
