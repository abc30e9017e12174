/*
 * index.go, part of watcon.
 *
 * Copyright 2026 The watcon authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package geo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is one indexed 3D point. ID is the caller's index into whatever
// subset the point was taken from; the index never invents IDs.
type Point struct {
	Loc [3]float64
	ID  int
}

// Compare satisfies kdtree.Comparable.
func (p Point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(Point)
	return p.Loc[d] - q.Loc[d]
}

// Dims satisfies kdtree.Comparable.
func (p Point) Dims() int { return 3 }

// Distance returns the squared Euclidean distance to c, as the kdtree
// machinery expects.
func (p Point) Distance(c kdtree.Comparable) float64 {
	q := c.(Point)
	var s float64
	for i := range p.Loc {
		d := p.Loc[i] - q.Loc[i]
		s += d * d
	}
	return s
}

// points satisfies kdtree.Interface.
type points []Point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane is a wrapping type for building the tree on a given dimension.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return p.points[i].Loc[p.Dim] < p.points[j].Loc[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Neighbor is one query result: the ID of an indexed point and its Euclidean
// distance to the query point.
type Neighbor struct {
	ID   int
	Dist float64
}

// Index wraps a static point set for one frame and answers nearest-neighbor
// queries within a radius. It is rebuilt per frame per atom subset; there are
// no incremental updates. An Index over zero points is legal and answers
// every query with no matches.
type Index struct {
	tree *kdtree.Tree
	size int
}

// NewIndex builds an index over the given points. The slice is reordered
// during construction.
func NewIndex(pts []Point) *Index {
	ix := &Index{size: len(pts)}
	if len(pts) == 0 {
		return ix
	}
	ix.tree = kdtree.New(points(pts), false)
	return ix
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.size }

// Query returns up to k indexed points within radius of q, sorted by
// increasing distance. A point at exactly the radius matches. An empty index,
// or no point within the radius, yields an empty result, never a sentinel.
func (ix *Index) Query(q [3]float64, k int, radius float64) []Neighbor {
	if ix == nil || ix.size == 0 || k <= 0 || radius <= 0 {
		return nil
	}
	//the keeper works on squared distances, as Point.Distance does
	keep := kdtree.NewDistKeeper(radius * radius)
	ix.tree.NearestSet(keep, Point{Loc: q})
	got := make([]Neighbor, 0, keep.Len())
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue //the keeper's bound sentinel
		}
		p := c.Comparable.(Point)
		got = append(got, Neighbor{ID: p.ID, Dist: math.Sqrt(c.Dist)})
	}
	sort.Slice(got, func(i, j int) bool { return got[i].Dist < got[j].Dist })
	if len(got) > k {
		got = got[:k]
	}
	return got
}
