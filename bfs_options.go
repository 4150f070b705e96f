package cayley

const (
	// DefaultMaxLayerSizeToStore is the largest layer whose states are kept.
	DefaultMaxLayerSizeToStore = 1000

	// DefaultMaxLayerSizeToExplore stops a search once a layer reaches it.
	DefaultMaxLayerSizeToExplore = 1_000_000_000

	// DefaultMaxDiameter bounds the number of BFS iterations.
	DefaultMaxDiameter = 1_000_000
)

// SeenSetPolicy selects which visited states a search remembers.
type SeenSetPolicy int

const (
	// SeenSetAuto keeps two layers for inverse-closed generators and the
	// full history otherwise.
	SeenSetAuto SeenSetPolicy = iota
	// SeenSetTwoLayers keeps the last two layers. It requires inverse-closed
	// generators.
	SeenSetTwoLayers
	// SeenSetFullHistory keeps every visited hash.
	SeenSetFullHistory
)

func (p SeenSetPolicy) String() string {
	switch p {
	case SeenSetAuto:
		return "auto"
	case SeenSetTwoLayers:
		return "two-layers"
	case SeenSetFullHistory:
		return "full-history"
	default:
		return "unknown"
	}
}

type bfsOptions struct {
	startStates           [][]int64
	maxLayerSizeToStore   int
	maxLayerSizeToExplore int
	maxDiameter           int
	returnAllEdges        bool
	returnAllHashes       bool
	keepAlive             func() error
	seenSetPolicy         SeenSetPolicy
}

// BFSOption configures a single BFS call.
type BFSOption func(*bfsOptions)

// WithStartStates starts the search from states instead of the central state.
func WithStartStates(states ...[]int64) BFSOption {
	return func(o *bfsOptions) {
		o.startStates = states
	}
}

// WithMaxLayerSizeToStore keeps the decoded states of layers with at most n
// states. The first and the last layer are always kept. If n < 0, every
// layer is kept.
func WithMaxLayerSizeToStore(n int) BFSOption {
	return func(o *bfsOptions) {
		o.maxLayerSizeToStore = n
	}
}

// WithMaxLayerSizeToExplore stops the search, incomplete, once a layer has
// at least n states.
func WithMaxLayerSizeToExplore(n int) BFSOption {
	return func(o *bfsOptions) {
		o.maxLayerSizeToExplore = n
	}
}

// WithMaxDiameter bounds the number of layers explored after the start layer.
func WithMaxDiameter(n int) BFSOption {
	return func(o *bfsOptions) {
		o.maxDiameter = n
	}
}

// WithReturnAllEdges records every (source, destination) hash pair.
func WithReturnAllEdges() BFSOption {
	return func(o *bfsOptions) {
		o.returnAllEdges = true
	}
}

// WithReturnAllHashes records the hashes of every visited state.
func WithReturnAllHashes() BFSOption {
	return func(o *bfsOptions) {
		o.returnAllHashes = true
	}
}

// WithKeepAlive registers fn to run after every completed layer. A non-nil
// error aborts the search with that error.
func WithKeepAlive(fn func() error) BFSOption {
	return func(o *bfsOptions) {
		o.keepAlive = fn
	}
}

// WithSeenSetPolicy selects how visited states are remembered.
func WithSeenSetPolicy(p SeenSetPolicy) BFSOption {
	return func(o *bfsOptions) {
		o.seenSetPolicy = p
	}
}

func applyBFSOptions(optFns []BFSOption) bfsOptions {
	o := bfsOptions{
		maxLayerSizeToStore:   DefaultMaxLayerSizeToStore,
		maxLayerSizeToExplore: DefaultMaxLayerSizeToExplore,
		maxDiameter:           DefaultMaxDiameter,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *bfsOptions) validate() error {
	if o.maxLayerSizeToExplore <= 0 {
		return configErrorf("max layer size to explore", nil, "must be positive, got %d", o.maxLayerSizeToExplore)
	}
	if o.maxDiameter < 0 {
		return configErrorf("max diameter", nil, "must not be negative, got %d", o.maxDiameter)
	}
	if o.startStates != nil && len(o.startStates) == 0 {
		return configErrorf("start states", nil, "must not be empty")
	}
	switch o.seenSetPolicy {
	case SeenSetAuto, SeenSetTwoLayers, SeenSetFullHistory:
	default:
		return configErrorf("seen set policy", nil, "unknown policy %d", int(o.seenSetPolicy))
	}
	return nil
}
