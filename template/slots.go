package template

import "github.com/orayew2002/acta-excel/domain"

// PhotosPerBlock is the number of photo slots one conformity block holds.
const PhotosPerBlock = 6

// Slot is a fixed position within a block receiving one photo and its caption.
// Column is the left column of the photo frame, SubOffset the row distance of
// its sub-block from the start of the photo section.
type Slot struct {
	Column    string
	EndColumn string
	SubOffset int
}

// Instance is one stamped repetition of a block template.
type Instance struct {
	Index     int
	RowOffset int
	Photos    []domain.PhotoItem
}

// Assign partitions items into consecutive chunks of capacity. It always
// returns at least one chunk so that an empty category still gets one block.
func Assign(items []domain.PhotoItem, capacity int) [][]domain.PhotoItem {
	if capacity < 1 {
		capacity = 1
	}
	if len(items) == 0 {
		return [][]domain.PhotoItem{nil}
	}
	chunks := make([][]domain.PhotoItem, 0, (len(items)+capacity-1)/capacity)
	for start := 0; start < len(items); start += capacity {
		end := min(start+capacity, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Plan returns the block instances needed to hold items with template t.
func Plan(t BlockTemplate, items []domain.PhotoItem) []Instance {
	chunks := Assign(items, len(t.Photos.Slots()))
	out := make([]Instance, len(chunks))
	for i, c := range chunks {
		out[i] = Instance{Index: i, RowOffset: i * t.Height, Photos: c}
	}
	return out
}
