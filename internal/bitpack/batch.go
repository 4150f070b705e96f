package bitpack

// Batch is a row-major matrix of words. Each row holds one state, either
// bit-packed or with one word per element.
type Batch struct {
	Rows  int
	Width int // words per row
	Data  []uint64
}

// NewBatch allocates a zeroed batch.
func NewBatch(rows, width int) Batch {
	return Batch{
		Rows:  rows,
		Width: width,
		Data:  make([]uint64, rows*width),
	}
}

// Wrap views data as a batch of the given width.
// len(data) must be a multiple of width.
func Wrap(data []uint64, width int) Batch {
	rows := 0
	if width > 0 {
		rows = len(data) / width
	}
	return Batch{Rows: rows, Width: width, Data: data[:rows*width]}
}

// Row returns the words of row i. The slice aliases the batch.
func (b Batch) Row(i int) []uint64 {
	return b.Data[i*b.Width : (i+1)*b.Width]
}

// Slice returns rows [lo, hi) without copying.
func (b Batch) Slice(lo, hi int) Batch {
	return Batch{
		Rows:  hi - lo,
		Width: b.Width,
		Data:  b.Data[lo*b.Width : hi*b.Width],
	}
}

// Gather copies the rows named by idx into a new batch, in idx order.
func (b Batch) Gather(idx []int) Batch {
	out := NewBatch(len(idx), b.Width)
	for i, r := range idx {
		copy(out.Row(i), b.Row(r))
	}
	return out
}

// Len returns the number of rows.
func (b Batch) Len() int { return b.Rows }

// SizeBytes returns the memory footprint of the batch payload.
func (b Batch) SizeBytes() int64 {
	return int64(len(b.Data)) * 8
}

// Append concatenates batches of the same width.
func Append(dst Batch, parts ...Batch) Batch {
	for _, p := range parts {
		if p.Rows == 0 {
			continue
		}
		if dst.Width == 0 {
			dst.Width = p.Width
		}
		dst.Data = append(dst.Data, p.Data...)
		dst.Rows += p.Rows
	}
	return dst
}
