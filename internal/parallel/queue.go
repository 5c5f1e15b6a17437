package parallel

import "slices"

// Propagation is a worker's output: seeds addressed to neighbouring tiles.
// Ids may lie outside the grid.
type Propagation[T any] map[TileID][]T

// Queue holds the seeds pending for each tile in one round.
//
// Run keeps two queues: the current one is read-only while the round's tasks
// run, the next one is filled by Merge after the barrier, then they swap.
type Queue[T any] struct {
	pending map[TileID][]T
	seeds   int
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{pending: make(map[TileID][]T)}
}

// Push appends seeds for tile id. Pushing no seeds is a no-op.
func (q *Queue[T]) Push(id TileID, seeds ...T) {
	if len(seeds) == 0 {
		return
	}
	q.pending[id] = append(q.pending[id], seeds...)
	q.seeds += len(seeds)
}

// Merge adds every list in out whose tile lies in g, skipping empty lists.
// It returns the number of seeds merged and dropped; dropped seeds addressed
// tiles off the grid.
func (q *Queue[T]) Merge(g *TileGrid, out Propagation[T]) (merged, dropped int) {
	for id, seeds := range out {
		if !g.Contains(id) {
			dropped += len(seeds)
			continue
		}
		q.Push(id, seeds...)
		merged += len(seeds)
	}
	return merged, dropped
}

// Seeds returns the pending seeds for tile id.
func (q *Queue[T]) Seeds(id TileID) []T {
	return q.pending[id]
}

// Tiles returns the ids with pending seeds in row-major order.
func (q *Queue[T]) Tiles() []TileID {
	ids := make([]TileID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b TileID) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		default:
			return 0
		}
	})
	return ids
}

// Len returns the number of tiles with pending seeds.
func (q *Queue[T]) Len() int {
	return len(q.pending)
}

// SeedCount returns the total number of pending seeds.
func (q *Queue[T]) SeedCount() int {
	return q.seeds
}

// Reset empties the queue, keeping its map allocation.
func (q *Queue[T]) Reset() {
	clear(q.pending)
	q.seeds = 0
}
