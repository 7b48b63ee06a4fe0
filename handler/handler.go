package handler

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/format"
)

// StdoutDestination makes Export write to the handler output instead of a file.
const StdoutDestination = "-"

// Handler connects the command line to the loading pipeline: it expands
// sources, runs aggregations, renders previews and dispatches exports.
type Handler struct {
	log    logrus.FieldLogger
	events *eventBus
	out    io.Writer

	reader     *core.Reader
	aggregator *core.Aggregator
	view       *core.View

	extension  string
	comma      rune
	allowEmpty bool
}

func New(reader *core.Reader, opts ...Option) *Handler {
	config := handlerConfig{
		log:       logrus.StandardLogger(),
		out:       os.Stdout,
		extension: DefaultExtension,
		nullText:  core.NullText,
		comma:     ',',
		parallel:  1,
	}
	for _, opt := range opts {
		opt(&config)
	}

	aggregator := core.NewAggregator(reader,
		core.AggregatorWithLogger(config.log),
		core.AggregatorWithParallelReads(config.parallel),
	)

	return &Handler{
		log: config.log,
		events: &eventBus{
			log:       config.log,
			listeners: config.listeners,
		},
		out: config.out,

		reader:     reader,
		aggregator: aggregator,
		view:       core.NewView(aggregator, core.ViewWithNullText(config.nullText)),

		extension:  config.extension,
		comma:      config.comma,
		allowEmpty: config.allowEmpty,
	}
}

// Load expands args to sources and aggregates them. Sources that could not be
// read are returned as faults, the rest is available through View and Dataset.
func (h *Handler) Load(ctx context.Context, args []string) (*core.Dataset, []core.LoadFault, error) {
	sources, err := ExpandSources(args, h.extension)
	if err != nil {
		return nil, nil, fmt.Errorf("ExpandSources: %w", err)
	}

	ds, faults := h.aggregator.Aggregate(ctx, sources, h.events.LoadStateChanged)

	h.log.WithFields(logrus.Fields{
		"run":     ds.ID(),
		"sources": len(sources),
		"loaded":  len(ds.Sources()),
		"rows":    ds.Len(),
		"columns": ds.Width(),
	}).Info("sources loaded")

	return ds, faults, nil
}

func (h *Handler) Dataset() *core.Dataset {
	return h.aggregator.Dataset()
}

func (h *Handler) Faults() []core.LoadFault {
	return h.aggregator.Faults()
}

// View returns the table model bound to the last loaded dataset.
func (h *Handler) View() *core.View {
	return h.view
}

// Preview writes the rows from-to of the loaded dataset as a text grid and
// returns the total number of rows. Negative indexes count from the end.
func (h *Handler) Preview(from, to int) (int, error) {
	length := h.view.RowCount()

	from, to, err := clampRange(from, to, length)
	if err != nil {
		return 0, err
	}

	text, err := formatView(h.view, from, to)
	if err != nil {
		return 0, fmt.Errorf("formatView: %w", err)
	}

	_, err = h.out.Write(append(text, '\n'))
	if err != nil {
		return 0, fmt.Errorf("out.Write: %w", err)
	}

	return length, nil
}

// Export writes the loaded dataset to destination in the given format
// ("csv", "json" or "table").
func (h *Handler) Export(fmat, destination string) error {
	formatter, err := h.formatter(fmat)
	if err != nil {
		return err
	}

	var opts []core.ExporterOption
	opts = append(opts, core.ExporterWithLogger(h.log))
	if h.allowEmpty {
		opts = append(opts, core.ExporterWithAllowEmpty())
	}

	ds := h.aggregator.Dataset()

	if destination == StdoutDestination {
		return h.exportToOutput(ds, formatter)
	}

	err = core.NewExporter(formatter, opts...).Export(ds, destination)
	if err != nil {
		return fmt.Errorf("Exporter.Export: %w", err)
	}

	h.log.WithFields(logrus.Fields{
		"destination": destination,
		"rows":        ds.Len(),
		"columns":     ds.Width(),
	}).Info("exported")

	return nil
}

func (h *Handler) exportToOutput(ds *core.Dataset, formatter core.Formatter) error {
	if ds.IsEmpty() && !h.allowEmpty {
		return core.ErrEmptyDataset
	}

	text, err := ds.Format(formatter, 0, -1, "")
	if err != nil {
		return fmt.Errorf("ds.Format: %w", err)
	}

	_, err = h.out.Write(text)
	if err != nil {
		return fmt.Errorf("out.Write: %w", err)
	}

	return nil
}

func (h *Handler) formatter(fmat string) (core.Formatter, error) {
	switch fmat {
	case "csv", "":
		return format.NewCSV(format.CSVWithComma(h.comma)), nil
	case "json":
		return format.NewJSON(), nil
	case "table":
		return newTable(), nil
	default:
		return nil, fmt.Errorf("export format: %q is not supported", fmat)
	}
}

// SourceColumns are the declared columns of the target table of a source.
type SourceColumns struct {
	Source  string
	Columns []*core.Column
	Err     error
}

// Describe returns the declared columns of every source in args.
func (h *Handler) Describe(ctx context.Context, args []string) ([]SourceColumns, error) {
	sources, err := ExpandSources(args, h.extension)
	if err != nil {
		return nil, fmt.Errorf("ExpandSources: %w", err)
	}

	out := make([]SourceColumns, 0, len(sources))
	for _, source := range sources {
		columns, err := h.reader.Describe(ctx, source)
		if err != nil {
			h.log.WithField("source", source).WithError(err).Warn("source skipped")
		}
		out = append(out, SourceColumns{
			Source:  source,
			Columns: columns,
			Err:     err,
		})
	}

	return out, nil
}

// clampRange resolves a from-to selection against length rows.
func clampRange(from, to, length int) (int, int, error) {
	if (from < 0 && to >= 0) || (from >= 0 && to >= 0 && from > to) || (from < 0 && to < 0 && from > to) {
		return 0, 0, core.ErrInvalidRange(from, to)
	}

	if from < 0 {
		from = max(from+length+1, 0)
	}
	if to < 0 {
		to = max(to+length+1, 0)
	}

	return min(from, length), min(to, length), nil
}
