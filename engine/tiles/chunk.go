// Package tiles provides chunked 2D spatial addressing for tile worlds
// layered on top of the engine core.
package tiles

// ChunkPos addresses one chunk on the 2D chunk grid.
type ChunkPos struct {
	X int32
	Y int32
}

// ChebyshevDistance is the chessboard distance between two chunks: the
// number of rings separating them.
func (p ChunkPos) ChebyshevDistance(other ChunkPos) int32 {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Offset translates the position.
func (p ChunkPos) Offset(dx, dy int32) ChunkPos {
	return ChunkPos{X: p.X + dx, Y: p.Y + dy}
}

// ChunksInRange enumerates every chunk within Chebyshev distance radius
// of center, row by row: (2·radius+1)² positions.
func ChunksInRange(center ChunkPos, radius int32) []ChunkPos {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	out := make([]ChunkPos, 0, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			out = append(out, center.Offset(dx, dy))
		}
	}
	return out
}
