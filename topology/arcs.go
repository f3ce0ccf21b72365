// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package topology

import (
	"fmt"

	"github.com/gogpu/globe/geo"
)

// arena holds every arc of a topology, decoded to absolute longitude/latitude.
// Rings refer to arcs by signed index: i means arc i as stored, ^i (that is
// -i-1) means arc i traversed backwards.
type arena struct {
	arcs [][]geo.Position
}

func newArena(t *Topology) (*arena, error) {
	a := &arena{arcs: make([][]geo.Position, len(t.Arcs))}
	for i, raw := range t.Arcs {
		if len(raw) == 0 {
			return nil, structErr(fmt.Sprintf("arcs[%d]", i), "empty arc", nil)
		}
		pts := make([]geo.Position, len(raw))
		var x, y float64
		for k, p := range raw {
			if len(p) < 2 {
				return nil, structErr(fmt.Sprintf("arcs[%d][%d]", i, k), "position needs two coordinates", nil)
			}
			if t.Transform == nil {
				pts[k] = geo.Position{p[0], p[1]}
				continue
			}
			x += p[0]
			y += p[1]
			lon, lat := t.Transform.apply(x, y)
			pts[k] = geo.Position{lon, lat}
		}
		a.arcs[i] = pts
	}
	return a, nil
}

// len returns the number of arcs.
func (a *arena) len() int { return len(a.arcs) }

// ring stitches the referenced arcs into one ring. Consecutive arcs share an
// endpoint, so the first position of every arc after the first is skipped.
// The result never aliases arena storage.
func (a *arena) ring(refs []int, where string) (geo.Ring, error) {
	if len(refs) == 0 {
		return nil, structErr(where, "ring references no arcs", nil)
	}

	n := 0
	for _, ref := range refs {
		idx := ref
		if ref < 0 {
			idx = ^ref
		}
		if idx >= len(a.arcs) {
			return nil, structErr(where, fmt.Sprintf("arc %d out of range (have %d)", ref, len(a.arcs)), nil)
		}
		n += len(a.arcs[idx])
	}

	ring := make(geo.Ring, 0, max(n, geo.MinRingLen))
	for k, ref := range refs {
		if k > 0 && len(ring) > 0 {
			ring = ring[:len(ring)-1]
		}
		if ref >= 0 {
			ring = append(ring, a.arcs[ref]...)
			continue
		}
		arc := a.arcs[^ref]
		for i := len(arc) - 1; i >= 0; i-- {
			ring = append(ring, arc[i])
		}
	}

	for len(ring) < geo.MinRingLen {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// polygon builds one polygon from its ring references.
func (a *arena) polygon(rings [][]int, where string) (geo.Polygon, error) {
	poly := make(geo.Polygon, 0, len(rings))
	for i, refs := range rings {
		r, err := a.ring(refs, fmt.Sprintf("%s[%d]", where, i))
		if err != nil {
			return nil, err
		}
		poly = append(poly, r)
	}
	return poly, nil
}
