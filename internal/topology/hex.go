// Package topology builds tile adjacency graphs and positions for the two
// world shapes the spec supports: a flat hexagonal grid, and a geodesic
// icosphere with 12 pentagon tiles. Ongoing per-tile neighbor lookups are
// served straight off Tile.Neighbors; this package only runs once, at
// world-build time.
package topology

import "math"

// HexCoord is an axial coordinate (q, r) on a flat hex grid.
// See https://www.redblobgames.com/grids/hexagons/ for the reference this
// follows (pointy-top orientation, six neighbors in fixed offset order).
type HexCoord struct {
	Q, R int
}

// hexDirectionOffsets enumerates the six axial neighbor offsets in a fixed
// order so adjacency stays deterministic across builds.
var hexDirectionOffsets = []HexCoord{
	{Q: 1, R: 0},  // E
	{Q: 1, R: -1}, // NE
	{Q: 0, R: -1}, // NW
	{Q: -1, R: 0}, // W
	{Q: -1, R: 1}, // SW
	{Q: 0, R: 1},  // SE
}

// Add returns the sum of two hex coordinates.
func (h HexCoord) Add(o HexCoord) HexCoord { return HexCoord{Q: h.Q + o.Q, R: h.R + o.R} }

// Neighbor returns the coordinate adjacent to h in the given direction
// (0-5, matching hexDirectionOffsets order).
func (h HexCoord) Neighbor(dir int) HexCoord { return h.Add(hexDirectionOffsets[dir%6]) }

// ToPixel converts an axial coordinate to planar x/y using pointy-top
// hexagons of the given size (center-to-corner distance).
func (h HexCoord) ToPixel(size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R))
	y = size * (3.0 / 2 * float64(h.R))
	return x, y
}

// FlatHexTile is the build-time output for one tile of a flat-hex world,
// before IDs are assigned.
type FlatHexTile struct {
	Coord HexCoord
	X, Y  float64
}

// BuildFlatHex lays out a (2*radius+1) x (2*radius+1) parallelogram of
// axial hex coordinates and returns tiles with symmetric 6-neighbor
// adjacency, wrapping independently on each axis so every tile has exactly
// six neighbors — a true torus, matching the spec's "6 elsewhere" invariant
// for flat-hex worlds (only geodesic worlds carry non-six-neighbor tiles,
// the 12 pentagons).
//
// A hexagon-shaped region (the set of coordinates with
// max(|q|,|r|,|q+r|)<=radius) cannot be torus-wrapped by reducing q and r
// independently mod (2*radius+1): that wraps a rhombus fundamental domain,
// not a hexagon, so boundary neighbors land outside the region and get
// dropped. Storing tiles on an actual rhombus (parallelogram) domain
// instead makes the per-axis wrap exact.
func BuildFlatHex(radius int, hexSize float64) (positions []FlatHexTile, neighbors [][]int) {
	if radius < 0 {
		radius = 0
	}
	width := 2*radius + 1
	height := width
	n := width * height

	positions = make([]FlatHexTile, n)
	neighbors = make([][]int, n)

	// storageIndex maps a (possibly out-of-range) axial coordinate,
	// expressed relative to the domain's origin corner, to its dense tile
	// id by wrapping each axis independently.
	storageIndex := func(q, r int) int {
		return wrapIndex(q, width) + wrapIndex(r, height)*width
	}

	for r := 0; r < height; r++ {
		for q := 0; q < width; q++ {
			i := r*width + q
			// Center coordinates around the origin for pixel layout; the
			// storage index above stays in [0,width)x[0,height) regardless.
			c := HexCoord{Q: q - radius, R: r - radius}
			x, y := c.ToPixel(hexSize)
			positions[i] = FlatHexTile{Coord: c, X: x, Y: y}

			nbrs := make([]int, 0, 6)
			for dir := 0; dir < 6; dir++ {
				nc := c.Neighbor(dir)
				nbrs = append(nbrs, storageIndex(nc.Q+radius, nc.R+radius))
			}
			neighbors[i] = nbrs
		}
	}
	return positions, neighbors
}

// wrapIndex reduces v into [0, modulus).
func wrapIndex(v, modulus int) int {
	v %= modulus
	if v < 0 {
		v += modulus
	}
	return v
}
