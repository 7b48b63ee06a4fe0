package handler

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rdb2csv/rdb2csv/core"
)

type handlerConfig struct {
	log        logrus.FieldLogger
	out        io.Writer
	listeners  []func(core.LoadEvent)
	extension  string
	nullText   string
	comma      rune
	parallel   int
	allowEmpty bool
}

type Option func(*handlerConfig)

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *handlerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOutput sets the writer for previews and stdout exports.
func WithOutput(out io.Writer) Option {
	return func(c *handlerConfig) {
		if out != nil {
			c.out = out
		}
	}
}

// WithLoadListener registers fn to receive every load event.
func WithLoadListener(fn func(core.LoadEvent)) Option {
	return func(c *handlerConfig) {
		c.listeners = append(c.listeners, fn)
	}
}

// WithExtension sets the extension of files picked from directories.
func WithExtension(ext string) Option {
	return func(c *handlerConfig) {
		if ext != "" {
			c.extension = ext
		}
	}
}

func WithNullText(text string) Option {
	return func(c *handlerConfig) {
		c.nullText = text
	}
}

// WithComma sets the csv field delimiter.
func WithComma(comma rune) Option {
	return func(c *handlerConfig) {
		c.comma = comma
	}
}

func WithParallelReads(n int) Option {
	return func(c *handlerConfig) {
		c.parallel = n
	}
}

// WithAllowEmpty allows exporting datasets without rows.
func WithAllowEmpty(allow bool) Option {
	return func(c *handlerConfig) {
		c.allowEmpty = allow
	}
}
