package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunksInObservationRange(t *testing.T) {
	chunks := ChunksInRange(ChunkPos{}, 5)

	assert.Len(t, chunks, 121)
	assert.Contains(t, chunks, ChunkPos{X: -5, Y: -5})
	assert.Contains(t, chunks, ChunkPos{X: 5, Y: 5})
	assert.Contains(t, chunks, ChunkPos{X: 0, Y: 0})
	assert.NotContains(t, chunks, ChunkPos{X: 6, Y: 0})

	for _, c := range chunks {
		assert.LessOrEqual(t, c.ChebyshevDistance(ChunkPos{}), int32(5))
	}
}

func TestChunksInRangeOffCenter(t *testing.T) {
	center := ChunkPos{X: 10, Y: -3}
	chunks := ChunksInRange(center, 1)

	assert.Len(t, chunks, 9)
	assert.Equal(t, ChunkPos{X: 9, Y: -4}, chunks[0])
	assert.Equal(t, ChunkPos{X: 11, Y: -2}, chunks[8])
}

func TestChunksInRangeDegenerate(t *testing.T) {
	assert.Equal(t, []ChunkPos{{X: 2, Y: 2}}, ChunksInRange(ChunkPos{X: 2, Y: 2}, 0))
	assert.Nil(t, ChunksInRange(ChunkPos{}, -1))
}

func TestChebyshevDistance(t *testing.T) {
	a := ChunkPos{X: 0, Y: 0}
	assert.Equal(t, int32(5), a.ChebyshevDistance(ChunkPos{X: 5, Y: 3}))
	assert.Equal(t, int32(4), a.ChebyshevDistance(ChunkPos{X: -2, Y: -4}))
	assert.Equal(t, int32(0), a.ChebyshevDistance(a))
}
