package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Exporter writes datasets to files.
type Exporter struct {
	formatter  Formatter
	allowEmpty bool
	log        logrus.FieldLogger
}

type exporterConfig struct {
	allowEmpty bool
	log        logrus.FieldLogger
}

type ExporterOption func(*exporterConfig)

// ExporterWithAllowEmpty makes the exporter write datasets without rows
// instead of refusing them with ErrEmptyDataset.
func ExporterWithAllowEmpty() ExporterOption {
	return func(c *exporterConfig) {
		c.allowEmpty = true
	}
}

func ExporterWithLogger(log logrus.FieldLogger) ExporterOption {
	return func(c *exporterConfig) {
		if log != nil {
			c.log = log
		}
	}
}

func NewExporter(formatter Formatter, opts ...ExporterOption) *Exporter {
	config := exporterConfig{
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Exporter{
		formatter:  formatter,
		allowEmpty: config.allowEmpty,
		log:        config.log,
	}
}

// Export formats the whole dataset and writes it to destination.
// The destination is replaced only once the output was fully written,
// on failure it is left as it was.
func (e *Exporter) Export(ds *Dataset, destination string) error {
	if ds == nil {
		ds = NewDataset()
	}
	if ds.IsEmpty() && !e.allowEmpty {
		return ErrEmptyDataset
	}

	data, err := ds.Format(e.formatter, 0, -1, "")
	if err != nil {
		return fmt.Errorf("ds.Format: %w", err)
	}

	err = writeFileAtomic(destination, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}

	e.log.WithFields(logrus.Fields{
		"dataset":     ds.ID(),
		"destination": destination,
		"rows":        ds.Len(),
	}).Debug("dataset exported")

	return nil
}

func writeFileAtomic(destination string, data []byte) (err error) {
	if destination == "" {
		return fmt.Errorf("empty destination path")
	}

	dir, base := filepath.Split(destination)
	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	tmpName := file.Name()

	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("file.Sync: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("file.Close: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("os.Chmod: %w", err)
	}
	if err = os.Rename(tmpName, destination); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
