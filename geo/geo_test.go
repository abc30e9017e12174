package geo

import (
	"fmt"
	"math"
	"testing"
)

func TestBoxDist(Te *testing.T) {
	b := NewBox([]float64{10, 10, 10, 90, 90, 90})
	if b == nil {
		Te.Fatal("box with valid dims came out nil")
	}
	//Points across the boundary: 0.5 and 9.5 are 1.0 apart under minimum image.
	d := b.Dist([3]float64{0.5, 0, 0}, [3]float64{9.5, 0, 0})
	fmt.Println("minimum-image distance:", d)
	if math.Abs(d-1.0) > 1e-10 {
		Te.Errorf("minimum image distance: got %f, want 1.0", d)
	}
	//A nil box must fall back to the plain distance.
	var nb *Box
	d = nb.Dist([3]float64{0.5, 0, 0}, [3]float64{9.5, 0, 0})
	if math.Abs(d-9.0) > 1e-10 {
		Te.Errorf("plain distance: got %f, want 9.0", d)
	}
}

func TestVertexAngle(Te *testing.T) {
	v := [3]float64{0, 0, 0}
	a := [3]float64{1, 0, 0}
	b := [3]float64{0, 1, 0}
	ang, err := VertexAngle(v, a, b)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("right angle:", ang*Rad2Deg)
	if math.Abs(ang*Rad2Deg-90) > 1e-8 {
		Te.Errorf("got %f deg, want 90", ang*Rad2Deg)
	}
	ang, err = VertexAngle(v, a, [3]float64{-1, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(ang*Rad2Deg-180) > 1e-8 {
		Te.Errorf("got %f deg, want 180", ang*Rad2Deg)
	}
	//Degenerate: zero-length vector
	_, err = VertexAngle(v, v, b)
	if err == nil {
		Te.Error("expected a degenerate-geometry error for a zero-length vector")
	}
}

func TestIndexGrid(Te *testing.T) {
	//A 3x3x3 grid of spacing 2.0. Each inner point has 6 neighbors at 2.0,
	//12 at 2*sqrt(2) and 8 at 2*sqrt(3).
	var pts []Point
	id := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				pts = append(pts, Point{Loc: [3]float64{2 * float64(i), 2 * float64(j), 2 * float64(k)}, ID: id})
				id++
			}
		}
	}
	ix := NewIndex(pts)
	center := [3]float64{2, 2, 2}
	got := ix.Query(center, 30, 2.1)
	//The center point itself plus its 6 axis neighbors.
	if len(got) != 7 {
		Te.Fatalf("got %d matches within 2.1, want 7", len(got))
	}
	if got[0].Dist != 0 {
		Te.Errorf("nearest match should be the query point itself, dist %f", got[0].Dist)
	}
	for _, n := range got[1:] {
		if math.Abs(n.Dist-2.0) > 1e-10 {
			Te.Errorf("axis neighbor at distance %f, want 2.0", n.Dist)
		}
	}
	//No false positives beyond the cutoff.
	got = ix.Query(center, 30, 1.9)
	if len(got) != 1 {
		Te.Errorf("got %d matches within 1.9, want only the query point", len(got))
	}
	//k truncation keeps the closest.
	got = ix.Query(center, 3, 4.0)
	if len(got) != 3 {
		Te.Errorf("k=3 query returned %d", len(got))
	}
	fmt.Println("grid query ok")
}

func TestIndexEmpty(Te *testing.T) {
	ix := NewIndex(nil)
	got := ix.Query([3]float64{0, 0, 0}, 10, 5)
	if len(got) != 0 {
		Te.Errorf("empty index answered %d matches", len(got))
	}
}

func TestMinDist(Te *testing.T) {
	refs := [][3]float64{{0, 0, 0}, {5, 0, 0}}
	d := MinDist([3]float64{6, 0, 0}, refs, nil)
	if math.Abs(d-1.0) > 1e-10 {
		Te.Errorf("got %f, want 1.0", d)
	}
	if !math.IsInf(MinDist([3]float64{0, 0, 0}, nil, nil), 1) {
		Te.Error("empty reference should give +Inf")
	}
}
