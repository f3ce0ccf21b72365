// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package topology

import (
	"encoding/json"
	"sort"
)

// Topology is a TopoJSON document.
//
// Boundaries are stored once in Arcs and referenced from Objects by index,
// so a border shared by two countries is encoded a single time.
type Topology struct {
	Type      string                     `json:"type"`
	Transform *Transform                 `json:"transform,omitempty"`
	BBox      []float64                  `json:"bbox,omitempty"`
	Arcs      [][][]float64              `json:"arcs"`
	Objects   map[string]json.RawMessage `json:"objects"`
}

// Transform maps quantized, delta-encoded arc positions back to
// longitude/latitude.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// apply converts an absolute quantized position.
func (t *Transform) apply(x, y float64) (float64, float64) {
	return x*t.Scale[0] + t.Translate[0], y*t.Scale[1] + t.Translate[1]
}

// Quantized reports whether arc positions are delta-encoded integers.
func (t *Topology) Quantized() bool {
	return t.Transform != nil
}

// ObjectNames returns the names of the top-level objects in sorted order.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// object is one TopoJSON geometry object. Arcs stays raw because its nesting
// depth depends on Type.
type object struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Geometries []object        `json:"geometries,omitempty"`
}

// Geometry type names used by TopoJSON objects.
const (
	TypeTopology           = "Topology"
	TypeGeometryCollection = "GeometryCollection"
	TypePolygon            = "Polygon"
	TypeMultiPolygon       = "MultiPolygon"
	TypePoint              = "Point"
	TypeMultiPoint         = "MultiPoint"
	TypeLineString         = "LineString"
	TypeMultiLineString    = "MultiLineString"
)
