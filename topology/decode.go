// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package topology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gogpu/globe/geo"
)

// Decode parses a TopoJSON asset and resolves the object named collectionKey
// into independent features.
//
// A GeometryCollection yields one feature per geometry; any other object
// yields a single feature. Every returned error wraps ErrInvalidStructure.
func Decode(asset []byte, collectionKey string) (*geo.Collection, error) {
	t, err := Parse(asset)
	if err != nil {
		return nil, err
	}
	return t.Collection(collectionKey)
}

// Parse decodes the TopoJSON document without resolving any object.
func Parse(asset []byte) (*Topology, error) {
	var t Topology
	if err := json.Unmarshal(asset, &t); err != nil {
		return nil, structErr("document", "malformed topology", err)
	}
	if t.Type != TypeTopology {
		return nil, structErr("type", fmt.Sprintf("got %q, want %q", t.Type, TypeTopology), nil)
	}
	if t.Objects == nil {
		return nil, structErr("objects", "missing", nil)
	}
	if t.Transform != nil && (t.Transform.Scale[0] == 0 || t.Transform.Scale[1] == 0) {
		return nil, structErr("transform.scale", "zero scale", nil)
	}
	return &t, nil
}

// Collection resolves the named object into features. The topology is not
// modified and can be resolved again for other objects.
func (t *Topology) Collection(collectionKey string) (*geo.Collection, error) {
	where := "objects." + collectionKey
	raw, ok := t.Objects[collectionKey]
	if !ok {
		return nil, structErr(where, "missing", nil)
	}

	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, structErr(where, "malformed object", err)
	}

	a, err := newArena(t)
	if err != nil {
		return nil, err
	}

	if obj.Type != TypeGeometryCollection {
		f, err := a.feature(&obj, where)
		if err != nil {
			return nil, err
		}
		return &geo.Collection{Features: []geo.Feature{f}}, nil
	}

	c := &geo.Collection{Features: make([]geo.Feature, 0, len(obj.Geometries))}
	for i := range obj.Geometries {
		f, err := a.feature(&obj.Geometries[i], fmt.Sprintf("%s.geometries[%d]", where, i))
		if err != nil {
			return nil, err
		}
		c.Features = append(c.Features, f)
	}
	return c, nil
}

// feature converts one geometry object.
func (a *arena) feature(o *object, where string) (geo.Feature, error) {
	id, err := parseID(o.ID)
	if err != nil {
		return geo.Feature{}, structErr(where+".id", "unsupported id", err)
	}
	f := geo.Feature{ID: id, Type: o.Type, Properties: o.Properties}

	polys, err := a.polygons(o, where)
	if err != nil {
		return geo.Feature{}, err
	}
	f.Polygons = polys
	return f, nil
}

// polygons resolves the areal part of a geometry object.
func (a *arena) polygons(o *object, where string) ([]geo.Polygon, error) {
	arcsWhere := where + ".arcs"
	switch o.Type {
	case "":
		return nil, nil

	case TypePolygon:
		var rings [][]int
		if err := json.Unmarshal(o.Arcs, &rings); err != nil {
			return nil, structErr(arcsWhere, "want [][]int", err)
		}
		poly, err := a.polygon(rings, arcsWhere)
		if err != nil {
			return nil, err
		}
		if len(poly) == 0 {
			return nil, nil
		}
		return []geo.Polygon{poly}, nil

	case TypeMultiPolygon:
		var polys [][][]int
		if err := json.Unmarshal(o.Arcs, &polys); err != nil {
			return nil, structErr(arcsWhere, "want [][][]int", err)
		}
		out := make([]geo.Polygon, 0, len(polys))
		for i, rings := range polys {
			poly, err := a.polygon(rings, fmt.Sprintf("%s[%d]", arcsWhere, i))
			if err != nil {
				return nil, err
			}
			if len(poly) > 0 {
				out = append(out, poly)
			}
		}
		return out, nil

	case TypeGeometryCollection:
		var out []geo.Polygon
		for i := range o.Geometries {
			polys, err := a.polygons(&o.Geometries[i], fmt.Sprintf("%s.geometries[%d]", where, i))
			if err != nil {
				return nil, err
			}
			out = append(out, polys...)
		}
		return out, nil

	case TypePoint, TypeMultiPoint, TypeLineString, TypeMultiLineString:
		// Valid TopoJSON, but there is nothing to fill on the globe.
		return nil, nil

	default:
		return nil, structErr(where+".type", fmt.Sprintf("unknown geometry type %q", o.Type), nil)
	}
}

// parseID accepts string and numeric ids.
func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
