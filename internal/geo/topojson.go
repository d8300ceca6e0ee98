package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
)

// The world topology is TopoJSON (world-atlas countries): shared arcs of
// quantized, delta-encoded positions, referenced by index from each
// country geometry. A negative arc index means the bitwise complement of
// the index, traversed in reverse.

type topology struct {
	Type      string                `json:"type"`
	Transform *topoTransform        `json:"transform"`
	Objects   map[string]topoObject `json:"objects"`
	Arcs      [][][]float64         `json:"arcs"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoObject struct {
	Type       string     `json:"type"`
	Geometries []topoGeom `json:"geometries"`
}

type topoGeom struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id"`
	Arcs       json.RawMessage `json:"arcs"`
	Properties topoProps       `json:"properties"`
}

type topoProps struct {
	Name string `json:"name"`
}

func decodeTopology(r io.Reader) ([]feature, error) {
	var t topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("parsing topojson: %w", err)
	}
	if !strings.EqualFold(t.Type, "Topology") {
		return nil, fmt.Errorf("unexpected document type %q", t.Type)
	}

	obj, ok := t.Objects["countries"]
	if !ok {
		return nil, fmt.Errorf("topology has no countries object")
	}
	if len(obj.Geometries) == 0 {
		return nil, fmt.Errorf("countries object is empty")
	}

	arcs := decodeArcs(t.Arcs, t.Transform)

	feats := make([]feature, 0, len(obj.Geometries))
	for _, g := range obj.Geometries {
		polys, err := g.asPolygons(arcs)
		if err != nil {
			return nil, err
		}
		if len(polys) == 0 {
			continue
		}
		feats = append(feats, feature{
			id:       parseGeomID(g.ID),
			name:     g.Properties.Name,
			polygons: polys,
		})
	}
	if len(feats) == 0 {
		return nil, fmt.Errorf("topology produced no usable countries")
	}
	return feats, nil
}

// decodeArcs resolves each arc to absolute lat/lng vertices. Quantized
// topologies store cumulative integer deltas scaled through the
// transform; positions are [lng, lat].
func decodeArcs(raw [][][]float64, tr *topoTransform) [][]vertex {
	arcs := make([][]vertex, len(raw))
	for i, arc := range raw {
		pts := make([]vertex, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if tr != nil {
				x += pos[0]
				y += pos[1]
				pts = append(pts, vertex{
					lng: tr.Translate[0] + tr.Scale[0]*x,
					lat: tr.Translate[1] + tr.Scale[1]*y,
				})
			} else {
				pts = append(pts, vertex{lng: pos[0], lat: pos[1]})
			}
		}
		arcs[i] = pts
	}
	return arcs
}

func (g topoGeom) asPolygons(arcs [][]vertex) ([]polygon, error) {
	switch g.Type {
	case "Polygon":
		var ringIdx [][]int
		if err := json.Unmarshal(g.Arcs, &ringIdx); err != nil {
			return nil, fmt.Errorf("decoding polygon arcs: %w", err)
		}
		p := buildPolygon(ringIdx, arcs)
		if len(p.rings) == 0 {
			return nil, nil
		}
		return []polygon{p}, nil
	case "MultiPolygon":
		var polyIdx [][][]int
		if err := json.Unmarshal(g.Arcs, &polyIdx); err != nil {
			return nil, fmt.Errorf("decoding multipolygon arcs: %w", err)
		}
		polys := make([]polygon, 0, len(polyIdx))
		for _, ringIdx := range polyIdx {
			p := buildPolygon(ringIdx, arcs)
			if len(p.rings) == 0 {
				continue
			}
			polys = append(polys, p)
		}
		return polys, nil
	default:
		// Other geometry types never appear in the countries layer.
		return nil, nil
	}
}

func buildPolygon(ringIdx [][]int, arcs [][]vertex) polygon {
	p := polygon{box: newEmptyBBox()}
	for _, idxs := range ringIdx {
		ring := stitchRing(idxs, arcs)
		if len(ring) < 3 {
			continue
		}
		for _, v := range ring {
			p.box.expand(v.lat, v.lng)
		}
		p.rings = append(p.rings, ring)
	}
	return p
}

// stitchRing joins the referenced arcs end to end. Consecutive arcs share
// an endpoint, so every arc after the first drops its first vertex.
func stitchRing(idxs []int, arcs [][]vertex) []vertex {
	var ring []vertex
	for _, idx := range idxs {
		ai := idx
		if ai < 0 {
			ai = ^ai
		}
		if ai >= len(arcs) {
			continue
		}
		seg := arcs[ai]
		if idx < 0 {
			rev := make([]vertex, len(seg))
			for i, v := range seg {
				rev[len(seg)-1-i] = v
			}
			seg = rev
		}
		if len(ring) > 0 && len(seg) > 0 {
			seg = seg[1:]
		}
		ring = append(ring, seg...)
	}
	return ring
}

// parseGeomID normalizes a geometry id to the 3-digit ISO numeric form
// used by the name table. IDs appear as strings ("076") in some builds of
// the atlas and as bare numbers (76) in others.
func parseGeomID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n >= 0 {
		return fmt.Sprintf("%03d", n)
	}
	return ""
}

func newEmptyBBox() bbox {
	return bbox{
		minLat: math.MaxFloat64,
		minLng: math.MaxFloat64,
		maxLat: -math.MaxFloat64,
		maxLng: -math.MaxFloat64,
	}
}
