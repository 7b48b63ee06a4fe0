package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DatasetSource provides the dataset currently in effect.
type DatasetSource interface {
	Dataset() *Dataset
}

var _ DatasetSource = (*Aggregator)(nil)

// Aggregator reads a list of sources and combines their rows into a single dataset.
// Every call to Aggregate replaces the dataset held by the aggregator.
type Aggregator struct {
	reader   SourceReader
	log      logrus.FieldLogger
	parallel int

	mu      sync.RWMutex
	dataset *Dataset
	faults  []LoadFault
}

type aggregatorConfig struct {
	log      logrus.FieldLogger
	parallel int
}

type AggregatorOption func(*aggregatorConfig)

func AggregatorWithLogger(log logrus.FieldLogger) AggregatorOption {
	return func(c *aggregatorConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// AggregatorWithParallelReads reads up to n sources at the same time.
// Rows are still merged in the requested source order.
func AggregatorWithParallelReads(n int) AggregatorOption {
	return func(c *aggregatorConfig) {
		if n > 0 {
			c.parallel = n
		}
	}
}

func NewAggregator(reader SourceReader, opts ...AggregatorOption) *Aggregator {
	config := aggregatorConfig{
		log:      discardLogger(),
		parallel: 1,
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Aggregator{
		reader:   reader,
		log:      config.log,
		parallel: config.parallel,
		dataset:  NewDataset(),
		faults:   []LoadFault{},
	}
}

// Dataset returns the dataset produced by the last completed run.
func (a *Aggregator) Dataset() *Dataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dataset
}

// Faults returns the load faults of the last completed run.
func (a *Aggregator) Faults() []LoadFault {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]LoadFault(nil), a.faults...)
}

type readResult struct {
	set *RowSet
	err error
}

// Aggregate reads sources in order and merges their rows into a new dataset.
// Sources that fail to load are skipped and reported as faults.
// onEvent (optional) is called for every state change of every source, never concurrently.
func (a *Aggregator) Aggregate(ctx context.Context, sources []string, onEvent func(LoadEvent)) (*Dataset, []LoadFault) {
	dataset := NewDataset()
	faults := make([]LoadFault, 0)

	log := a.log.WithField("run", dataset.ID())
	log.WithField("sources", len(sources)).Info("aggregation started")

	var emitMu sync.Mutex
	emit := func(ev LoadEvent) {
		if onEvent == nil {
			return
		}
		ev.Run = dataset.ID()
		emitMu.Lock()
		defer emitMu.Unlock()
		onEvent(ev)
	}

	read := func(i int, source string) readResult {
		if err := ctx.Err(); err != nil {
			return readResult{err: newSourceError(source, ErrSourceUnreadable, fmt.Errorf("not read: %w", err))}
		}
		emit(LoadEvent{Source: source, Index: i, State: LoadStateReading})
		set, err := a.reader.ReadTable(ctx, source)
		return readResult{set: set, err: err}
	}

	var prefetched []readResult
	if a.parallel > 1 && len(sources) > 1 {
		prefetched = a.readAll(sources, read)
	}

	for i, source := range sources {
		var res readResult
		if prefetched != nil {
			res = prefetched[i]
		} else {
			res = read(i, source)
		}

		if res.err != nil {
			faults = append(faults, LoadFault{Source: source, Err: res.err})
			log.WithField("source", source).WithError(res.err).Debug("source skipped")
			emit(LoadEvent{Source: source, Index: i, State: LoadStateFailed, Err: res.err})
			continue
		}

		dataset.append(res.set)
		emit(LoadEvent{Source: source, Index: i, State: LoadStateLoaded, Rows: res.set.Len()})
	}

	log.WithFields(logrus.Fields{
		"rows":    dataset.Len(),
		"columns": dataset.Width(),
		"faults":  len(faults),
	}).Info("aggregation finished")

	a.mu.Lock()
	a.dataset = dataset
	a.faults = faults
	a.mu.Unlock()

	return dataset, append([]LoadFault(nil), faults...)
}

// readAll reads every source with bounded concurrency, keeping results by position.
func (a *Aggregator) readAll(sources []string, read func(int, string) readResult) []readResult {
	results := make([]readResult, len(sources))

	g := &errgroup.Group{}
	g.SetLimit(a.parallel)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			results[i] = read(i, source)
			return nil
		})
	}
	// read failures are kept in results
	_ = g.Wait()

	return results
}
