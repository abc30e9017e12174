/*
 * interfaces.go, part of watcon.
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

package watcon

// Frame is one trajectory frame: the atom records plus the periodic box
// dimensions (the first three values are the orthorhombic box lengths), or a
// nil Box when no box is available.
type Frame struct {
	Records []AtomRecord
	Box     []float64
}

// Trajectory supplies, per frame, the atom records and the periodic box
// dimensions. The core calls Next once per frame and does not retain a
// reference to the returned frame afterwards.
type Trajectory interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame. At the normal end of the trajectory it
	//returns an error implementing LastFrameError.
	Next() (*Frame, error)

	//Returns the number of atoms per frame.
	Len() int
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors
// (i.e. last frame) so they can be filtered in a typeswitch that looks for
// this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

// SequenceIndexer maps a residue id to its multiple-sequence-alignment column.
// An absent or out-of-range id answers ok=false, which the core treats as "no
// alignment", never as an error.
type SequenceIndexer interface {
	AlignmentColumn(resid int) (col int, ok bool)
}

// MapIndexer is a SequenceIndexer backed by a plain map.
type MapIndexer map[int]int

func (M MapIndexer) AlignmentColumn(resid int) (int, bool) {
	col, ok := M[resid]
	return col, ok
}

// PointClusterer consumes 3D coordinates aggregated across frames and returns
// per-point cluster labels and cluster centers. The core only contributes
// coordinate samples; clustering itself is an external collaborator.
type PointClusterer interface {
	Cluster(coords [][3]float64) (labels []int, centers [][3]float64, err error)
}
