// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// Style holds the colours and metrics used to paint a frame.
// Colours are hex strings as accepted by gg.Hex; an empty Background leaves
// the canvas transparent.
type Style struct {
	Background  string
	Water       string
	Land        string
	Border      string
	BorderWidth float64
	Text        string
	ErrorText   string
	FontSize    float64

	// Rim strokes the sphere outline when set, in frame pixels.
	Rim      string
	RimWidth float64

	// Padding is the margin around the sphere as a fraction of the size.
	Padding float64
}

// DefaultStyle returns the stock globe palette.
func DefaultStyle() Style {
	return Style{
		Water:       "#88aab6",
		Land:        "#868585",
		Border:      "#5d5e5d",
		BorderWidth: 0.5,
		Text:        "#000000",
		ErrorText:   "#ff0000",
		FontSize:    14,
		RimWidth:    1,
		Padding:     0.01,
	}
}
