package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFlatHexEveryTileHasSixNeighbors(t *testing.T) {
	for _, radius := range []int{1, 2, 4} {
		positions, neighbors := BuildFlatHex(radius, 1)
		require.Len(t, neighbors, len(positions))
		for i, nbrs := range neighbors {
			assert.Lenf(t, nbrs, 6, "tile %d: expected 6 neighbors, got %d", i, len(nbrs))
		}
	}
}

func TestBuildFlatHexAdjacencyIsSymmetric(t *testing.T) {
	_, neighbors := BuildFlatHex(2, 1)

	for i, nbrs := range neighbors {
		for _, j := range nbrs {
			assert.Containsf(t, neighbors[j], i, "tile %d lists %d as a neighbor, but not vice versa", i, j)
		}
	}
}

func TestBuildFlatHexTileCountMatchesDomainSize(t *testing.T) {
	positions, _ := BuildFlatHex(2, 1)
	assert.Len(t, positions, 25) // (2*2+1)^2
}

func TestBuildFlatHexNegativeRadiusClampsToZero(t *testing.T) {
	positions, neighbors := BuildFlatHex(-3, 1)
	assert.Len(t, positions, 1)
	assert.Len(t, neighbors, 1)
}
