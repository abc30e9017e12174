/*
 * geo.go, part of watcon.
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

//Package geo provides the distance and angle primitives for the network
//search: plain and minimum-image Euclidean distances, vertex angles and a
//kd-tree backed spatial index over a static set of 3D points.
package geo

import (
	"math"

	watcon "github.com/abrownless1/WatCon"
	"gonum.org/v1/gonum/floats/scalar"
)

const appzero float64 = 0.000000000001 //used to correct floating point errors

// Rad2Deg converts radians to degrees when multiplied.
const Rad2Deg = 180.0 / math.Pi

// Deg2Rad converts degrees to radians when multiplied.
const Deg2Rad = math.Pi / 180.0

// Box is an orthorhombic periodic simulation box.
type Box struct {
	X, Y, Z float64
}

// NewBox builds a Box from box dimensions as a trajectory supplies them (only
// the first three values, the box lengths, are used). A nil or too-short or
// zero-volume dims yields a nil box, which every function here accepts and
// treats as "no periodicity".
func NewBox(dims []float64) *Box {
	if len(dims) < 3 {
		return nil
	}
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return nil
	}
	return &Box{X: dims[0], Y: dims[1], Z: dims[2]}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Dist returns the minimum-image distance between a and b under the box. A
// nil receiver gives the plain Euclidean distance.
func (B *Box) Dist(a, b [3]float64) float64 {
	if B == nil {
		return Dist(a, b)
	}
	dx := minImage(a[0]-b[0], B.X)
	dy := minImage(a[1]-b[1], B.Y)
	dz := minImage(a[2]-b[2], B.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func minImage(d, l float64) float64 {
	return d - l*math.Round(d/l)
}

// MinDist returns the minimum distance (minimum-image if box is not nil) from
// p to any point in refs. It returns +Inf for an empty refs.
func MinDist(p [3]float64, refs [][3]float64, box *Box) float64 {
	min := math.Inf(1)
	for _, r := range refs {
		if d := box.Dist(p, r); d < min {
			min = d
		}
	}
	return min
}

// Angle returns the angle, in radians, between the vectors v1 and v2. It
// takes care of floating point errors that would put the cosine out of
// [-1,1], but does not otherwise check its arguments; zero-length vectors
// yield a degenerate-geometry error.
func Angle(v1, v2 [3]float64) (float64, error) {
	norms := norm(v1) * norm(v2)
	if norms <= appzero {
		return 0, watcon.NewError(watcon.KindGeometryDegenerate, "angle between zero-length vectors")
	}
	argument := dot(v1, v2) / norms
	//Take care of floating point math errors
	if scalar.EqualWithinAbs(argument, 1, appzero) {
		argument = 1
	} else if scalar.EqualWithinAbs(argument, -1, appzero) {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.0, nil
	}
	return angle, nil
}

// VertexAngle returns the angle at vertex, in radians, between the directions
// towards a and b.
func VertexAngle(vertex, a, b [3]float64) (float64, error) {
	va := sub(a, vertex)
	vb := sub(b, vertex)
	r, err := Angle(va, vb)
	if err != nil {
		return 0, watcon.EDecorate(err, "VertexAngle")
	}
	return r, nil
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}
