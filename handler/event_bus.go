package handler

import (
	"github.com/sirupsen/logrus"

	"github.com/rdb2csv/rdb2csv/core"
)

// eventBus turns load events into log notices and passes them on to listeners.
type eventBus struct {
	log       logrus.FieldLogger
	listeners []func(core.LoadEvent)
}

func (eb *eventBus) LoadStateChanged(ev core.LoadEvent) {
	log := eb.log.WithFields(logrus.Fields{
		"run":    ev.Run,
		"source": ev.Source,
		"state":  ev.State.String(),
	})

	switch ev.State {
	case core.LoadStateReading:
		log.Debug("reading source")
	case core.LoadStateLoaded:
		log.WithField("rows", ev.Rows).Info("source loaded")
	case core.LoadStateFailed:
		log.WithError(ev.Err).Warn("source skipped")
	}

	for _, l := range eb.listeners {
		l(ev)
	}
}
