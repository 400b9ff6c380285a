package repository

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type options struct {
	log          logrus.FieldLogger
	newID        func() string
	requireStock bool
}

type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithIDGenerator replaces uuid.NewString for new inventory items.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithRequireStock makes cart adds fail when the item has less stock than requested.
func WithRequireStock(require bool) Option {
	return func(o *options) {
		o.requireStock = require
	}
}

func newOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := options{
		log:          discard,
		newID:        uuid.NewString,
		requireStock: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
