// Package cayley explores implicit graphs generated by permutations or
// integer matrices acting on states, layer by layer, without ever
// materializing the graph.
//
// Vertices are states (integer vectors, or flattened matrices) and edges are
// the generators applied to a state. Starting from the central state, BFS
// discovers every state at distance 1, 2, ... and records the size of every
// layer. Graphs of n! states and more are explored in bounded memory:
//
//   - states are bit-packed into as few 64-bit words as their value range
//     allows, and permutations act on the packed words directly;
//   - states are deduplicated by a 64-bit hash instead of full comparison;
//     when a state fits one word the hash is the state itself and exact;
//   - for inverse-closed generator sets only the last two layers are
//     remembered;
//   - only layers up to a configurable size keep their decoded states.
//
// # Quick Start
//
//	def, _ := cayley.NewPermutationDefinition([][]int{
//	    {1, 2, 3, 0}, // left shift
//	    {3, 0, 1, 2}, // right shift
//	    {1, 0, 2, 3}, // swap
//	})
//	g, _ := cayley.New(def)
//	res, _ := g.BFS(ctx)
//	fmt.Println(res.LayerSizes, res.Completed)
//
// Well-known families live in the generators package:
//
//	def, _ := generators.LRX(10)
//
// # Limits
//
// BFS stops early, with Completed set to false, when a layer reaches
// WithMaxLayerSizeToExplore or after WithMaxDiameter layers. Scratch memory
// is reserved against WithMemoryLimit; a search that does not fit fails with
// ErrResourceExhausted.
//
// # Hash Collisions
//
// When a state needs more than one word, two distinct states may share a
// hash and one of them is then silently merged into the other. The
// probability is about N²/2⁶⁵ for N visited states. WithCollisionCheck
// detects collisions among the neighbors of a layer and fails with
// ErrHashCollision instead.
package cayley
