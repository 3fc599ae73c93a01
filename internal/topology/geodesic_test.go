package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeodesicLevelZeroIsBareIcosahedron(t *testing.T) {
	positions, neighbors := BuildGeodesic(0)

	require.Len(t, positions, 12)
	assert.Equal(t, 12, PentagonCount(neighbors))
	for i, nbrs := range neighbors {
		assert.Lenf(t, nbrs, 5, "tile %d: bare icosahedron vertex should have degree 5", i)
	}
}

func TestBuildGeodesicLevelOneMatchesWorkedExample(t *testing.T) {
	positions, neighbors := BuildGeodesic(1)

	require.Len(t, positions, 42)
	assert.Equal(t, 12, PentagonCount(neighbors))
	for i, nbrs := range neighbors {
		degree := len(nbrs)
		assert.Truef(t, degree == 5 || degree == 6, "tile %d: unexpected degree %d", i, degree)
	}
}

func TestBuildGeodesicAdjacencyIsSymmetric(t *testing.T) {
	_, neighbors := BuildGeodesic(1)

	for i, nbrs := range neighbors {
		for _, j := range nbrs {
			assert.Containsf(t, neighbors[j], i, "tile %d lists %d as a neighbor, but not vice versa", i, j)
		}
	}
}

func TestBuildGeodesicNegativeLevelClampsToZero(t *testing.T) {
	positions, _ := BuildGeodesic(-1)
	assert.Len(t, positions, 12)
}
