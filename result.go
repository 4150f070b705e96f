package cayley

// BFSResult is the outcome of a BFS call.
type BFSResult struct {
	// LayerSizes holds the number of states of every explored layer.
	LayerSizes []int `json:"layer_sizes"`

	// Layers holds the decoded states of the stored layers. The first and
	// the last layer are always present.
	Layers map[int][][]int64 `json:"layers"`

	// Completed is false if the search stopped at a limit.
	Completed bool `json:"completed"`

	// VerticesHashes holds the hash of every visited state in layer order.
	// Set with WithReturnAllHashes.
	VerticesHashes []uint64 `json:"vertices_hashes,omitempty"`

	// EdgesListHashes holds (source, destination) hash pairs. Set with
	// WithReturnAllEdges.
	EdgesListHashes [][2]uint64 `json:"edges_list_hashes,omitempty"`
}

// Diameter returns the index of the last explored layer.
func (r *BFSResult) Diameter() int {
	return len(r.LayerSizes) - 1
}

// NumVertices returns the number of visited states.
func (r *BFSResult) NumVertices() int {
	n := 0
	for _, s := range r.LayerSizes {
		n += s
	}
	return n
}

// Layer returns the states of layer i, if that layer was stored.
func (r *BFSResult) Layer(i int) ([][]int64, bool) {
	l, ok := r.Layers[i]
	return l, ok
}

// LastLayer returns the states of the last explored layer.
func (r *BFSResult) LastLayer() [][]int64 {
	return r.Layers[r.Diameter()]
}

// VertexIndex maps every hash of VerticesHashes to its position.
func (r *BFSResult) VertexIndex() map[uint64]int {
	idx := make(map[uint64]int, len(r.VerticesHashes))
	for i, h := range r.VerticesHashes {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	return idx
}

// EdgesList returns the edges as pairs of positions in VerticesHashes. Edges
// with an endpoint outside VerticesHashes are skipped.
func (r *BFSResult) EdgesList() [][2]int {
	idx := r.VertexIndex()
	out := make([][2]int, 0, len(r.EdgesListHashes))
	for _, e := range r.EdgesListHashes {
		src, ok1 := idx[e[0]]
		dst, ok2 := idx[e[1]]
		if ok1 && ok2 {
			out = append(out, [2]int{src, dst})
		}
	}
	return out
}

// AdjacencyMatrix returns the dense adjacency matrix over VerticesHashes.
// Entry [i][j] counts the edges from vertex i to vertex j. Intended for
// small graphs.
func (r *BFSResult) AdjacencyMatrix() [][]int {
	n := len(r.VerticesHashes)
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for _, e := range r.EdgesList() {
		m[e[0]][e[1]]++
	}
	return m
}
