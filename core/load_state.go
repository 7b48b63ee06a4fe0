package core

type LoadState int

const (
	LoadStateUnknown LoadState = iota
	LoadStateReading
	LoadStateLoaded
	LoadStateFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadStateReading:
		return "reading"
	case LoadStateLoaded:
		return "loaded"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadEvent is emitted for each state change of a source during aggregation.
type LoadEvent struct {
	Run    DatasetID
	Source string
	// Index of the source in the requested list.
	Index int
	State LoadState
	// Rows contributed to the dataset, set when State is LoadStateLoaded.
	Rows int
	// Err is set when State is LoadStateFailed.
	Err error
}
