package geolbl

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestDecodeGeometryDropsElevation(t *testing.T) {
	g3, err := DecodeGeometry([]byte(`{"type":"Polygon","coordinates":[[
		[500050,1699950,12.5],[500075,1699950,12.5],[500075,1699930,13],[500050,1699950,12.5]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	g2, err := DecodeGeometry([]byte(`{"type":"Polygon","coordinates":[[
		[500050,1699950],[500075,1699950],[500075,1699930],[500050,1699950]]]}`))
	if err != nil {
		t.Fatal(err)
	}

	inv, _ := testTransform.Invert()
	r3 := PixelRings(g3, inv)
	r2 := PixelRings(g2, inv)
	if len(r3) != 1 || len(r2) != 1 || len(r3[0]) != len(r2[0]) {
		t.Fatalf("unexpected rings: 3D %v, 2D %v", r3, r2)
	}
	for i := range r2[0] {
		if r3[0][i] != r2[0][i] {
			t.Errorf("vertex %d: 3D %v, 2D %v", i, r3[0][i], r2[0][i])
		}
	}
	if want := (orb.Point{150, 140}); r2[0][2] != want {
		t.Errorf("got %v, want %v", r2[0][2], want)
	}
}

func TestDecodeGeometryInvalid(t *testing.T) {
	if _, err := DecodeGeometry([]byte(`{"type":"Polygon","coordinates":`)); err == nil {
		t.Error("expected an error")
	}
}

func TestPixelRings(t *testing.T) {
	inv, _ := testTransform.Invert()

	withHole := pixelSquare(10, 10, 50, 50)
	withHole = append(withHole, pixelSquare(20, 20, 30, 30)[0])
	multi := orb.MultiPolygon{pixelSquare(0, 0, 10, 10), pixelSquare(100, 100, 120, 130)}

	tests := []struct {
		name  string
		geom  orb.Geometry
		rings int
		first orb.Point
	}{
		{"polygon exterior only", withHole, 1, orb.Point{10, 10}},
		{"multipolygon part per ring", multi, 2, orb.Point{0, 0}},
		{"point", geoOf(5, 5), 0, orb.Point{}},
		{"line", orb.LineString{geoOf(0, 0), geoOf(1, 1)}, 0, orb.Point{}},
		{"empty polygon", orb.Polygon{}, 0, orb.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings := PixelRings(tt.geom, inv)
			if len(rings) != tt.rings {
				t.Fatalf("got %d rings, want %d", len(rings), tt.rings)
			}
			if tt.rings > 0 && rings[0][0] != tt.first {
				t.Errorf("first vertex %v, want %v", rings[0][0], tt.first)
			}
		})
	}

	rings := PixelRings(multi, inv)
	if got := rings[1][2]; got != (orb.Point{120, 130}) {
		t.Errorf("second part vertex: got %v", got)
	}
}
