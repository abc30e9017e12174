/*
 * doc.go, part of watcon.
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

/*Package watcon builds and analyzes hydrogen-bond connectivity networks among
water molecules, and optionally protein heavy atoms, found in molecular
structures and trajectory frames.

	**watcon capabilities**

    Classifies atoms into protein and water categories at ingestion, grouping
	each water residue into an oxygen and two hydrogens.

    Finds hydrogen-bond candidate edges with a kd-tree neighbor search, either
	distance-only between water oxygens (and protein polar atoms), or
	hydrogen-explicit and directed, with an optional donor-H...acceptor
	angle criterion.

    Selects an "active site" subset of atoms and waters by minimum-image
	distance to a reference atom group.

    Assembles typed graphs (gonum graph/simple) with per-node category,
	position and alignment-column metadata, and per-edge bond category and
	active-site tags.

    Computes network descriptors over selectable subgraphs: density,
	connected component sizes, characteristic path length, local clustering
	coefficients, degree-distribution entropy, and per-residue interaction
	tallies.

    Processes trajectory frames concurrently, one worker per frame, with
	per-frame failure containment and an append-only water classification
	log.

The root package holds the per-frame atom data model and the interfaces to
collaborators (trajectory readers, sequence indexers, point clusterers).
The analysis itself lives in the geo, network, metrics, residues and dyn
subpackages.*/
package watcon
