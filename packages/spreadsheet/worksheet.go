package spreadsheet

import (
	"iter"
	"math/bits"
)

// ChunkKey represents the key for indexing chunks in Worksheet
type ChunkKey struct {
	ChunkRow int
	ChunkCol int
}

// Worksheet is sparse cell storage optimized for clustered data.
//
// architecture:
// - cells are partitioned into 256x256 chunks for spatial locality
// - a chunk is allocated on first write and dropped when its last cell goes
// - an occupancy bitmap per chunk makes scans skip empty slots
//
// performance characteristics:
// - O(1) cell access
// - memory allocated only for non-empty regions
type Worksheet struct {
	chunks     map[ChunkKey]*Chunk // sparse map of chunks indexed by ChunkKey
	totalCells int                 // stats tracking total number of cells
}

const (
	ChunkRows = 256                   // rows per chunk - power of 2 for efficient modulo
	ChunkCols = 256                   // columns per chunk - matches typical viewport size
	ChunkSize = ChunkRows * ChunkCols // 65536 cells per chunk
)

// Chunk represents a 256x256 region of cells
type Chunk struct {
	Cells          []*Cell  // column-first slots
	NonEmptyCount  int      // count of occupied slots
	OccupiedBitmap []uint64 // bit-packed array tracking which slots are occupied
}

// NewWorksheet creates a new worksheet
func NewWorksheet() *Worksheet {
	return &Worksheet{
		chunks: make(map[ChunkKey]*Chunk),
	}
}

// locate splits a position into its chunk key and slot index
func locate(pos Position) (ChunkKey, int) {
	key := ChunkKey{ChunkRow: pos.Row / ChunkRows, ChunkCol: pos.Col / ChunkCols}
	localRow := pos.Row % ChunkRows
	localCol := pos.Col % ChunkCols

	// column-first indexing for better cache locality
	return key, localCol*ChunkRows + localRow
}

// getChunk retrieves or creates a chunk
func (w *Worksheet) getChunk(key ChunkKey) *Chunk {
	chunk, exists := w.chunks[key]
	if !exists {
		chunk = &Chunk{
			Cells:          make([]*Cell, ChunkSize),
			OccupiedBitmap: make([]uint64, (ChunkSize+63)/64), // 64 bits per word
		}
		w.chunks[key] = chunk
	}
	return chunk
}

// GetCell retrieves the cell at pos, or nil
func (w *Worksheet) GetCell(pos Position) *Cell {
	if !pos.IsValid() {
		return nil
	}

	key, idx := locate(pos)
	chunk, exists := w.chunks[key]
	if !exists {
		return nil
	}
	return chunk.Cells[idx]
}

// PutCell stores cell at its position, replacing whatever was there
func (w *Worksheet) PutCell(cell *Cell) {
	key, idx := locate(cell.position)
	chunk := w.getChunk(key)

	if chunk.Cells[idx] == nil {
		chunk.NonEmptyCount++
		w.totalCells++
	}
	chunk.Cells[idx] = cell

	// update occupied bitmap
	chunk.OccupiedBitmap[idx/64] |= 1 << (idx % 64)
}

// RemoveCell removes the cell at pos
func (w *Worksheet) RemoveCell(pos Position) {
	key, idx := locate(pos)
	chunk, exists := w.chunks[key]
	if !exists || chunk.Cells[idx] == nil {
		return
	}

	chunk.Cells[idx] = nil
	chunk.NonEmptyCount--
	w.totalCells--
	chunk.OccupiedBitmap[idx/64] &^= 1 << (idx % 64)

	// drop the chunk once empty to release its memory
	if chunk.NonEmptyCount == 0 {
		delete(w.chunks, key)
	}
}

// Cells iterates over every stored cell, in no particular order
func (w *Worksheet) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, chunk := range w.chunks {
			for word, bitset := range chunk.OccupiedBitmap {
				for bitset != 0 {
					bit := bits.TrailingZeros64(bitset)
					bitset &^= 1 << bit

					if !yield(chunk.Cells[word*64+bit]) {
						return
					}
				}
			}
		}
	}
}

// GetTotalCells returns the number of stored cells
func (w *Worksheet) GetTotalCells() int {
	return w.totalCells
}

// GetChunkCount returns the number of allocated chunks
func (w *Worksheet) GetChunkCount() int {
	return len(w.chunks)
}
