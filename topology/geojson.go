// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package topology

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/gogpu/globe/geo"
)

// FeatureCollection converts decoded features into a GeoJSON FeatureCollection.
// Single-polygon features become Polygon geometries, the rest MultiPolygon;
// features without area get a null geometry.
func FeatureCollection(c *geo.Collection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if c == nil {
		return fc
	}
	for i := range c.Features {
		fc.AddFeature(geoJSONFeature(&c.Features[i]))
	}
	return fc
}

// ToGeoJSON encodes c as a GeoJSON FeatureCollection document.
func ToGeoJSON(c *geo.Collection) ([]byte, error) {
	return FeatureCollection(c).MarshalJSON()
}

func geoJSONFeature(f *geo.Feature) *geojson.Feature {
	var out *geojson.Feature
	switch len(f.Polygons) {
	case 0:
		out = geojson.NewFeature(nil)
	case 1:
		out = geojson.NewPolygonFeature(polygonCoords(f.Polygons[0]))
	default:
		polys := make([][][][]float64, len(f.Polygons))
		for i, p := range f.Polygons {
			polys[i] = polygonCoords(p)
		}
		out = geojson.NewMultiPolygonFeature(polys...)
	}

	if f.ID != "" {
		out.ID = f.ID
	}
	for k, v := range f.Properties {
		out.Properties[k] = v
	}
	return out
}

func polygonCoords(p geo.Polygon) [][][]float64 {
	rings := make([][][]float64, len(p))
	for i, r := range p {
		coords := make([][]float64, len(r))
		for j, pos := range r {
			coords[j] = []float64{pos[0], pos[1]}
		}
		rings[i] = coords
	}
	return rings
}
