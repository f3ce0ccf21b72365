// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package topology decodes TopoJSON map assets into independent polygon
// features.
//
// TopoJSON stores every boundary once as an arc and rebuilds each polygon by
// concatenating arcs by index, reversing those referenced with a negative
// index. Decode resolves that sharing completely: the returned rings are
// plain coordinate slices owned by their feature.
//
//	c, err := topology.Decode(asset, "ne_110m_admin_0_countries")
//	if errors.Is(err, topology.ErrInvalidStructure) {
//	    // malformed asset, do not retry
//	}
//
// FeatureCollection and ToGeoJSON convert the result to GeoJSON.
package topology
