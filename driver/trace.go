package driver

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TraceLevel controls how much of the recognizer's work is reported to
// the trace sink.
type TraceLevel int

const (
	TraceOff TraceLevel = iota
	TraceBasic
	TraceDetailed
	TraceTrace
)

func TraceLevelFromString(s string) (TraceLevel, error) {
	switch s {
	case "off":
		return TraceOff, nil
	case "basic":
		return TraceBasic, nil
	case "detailed":
		return TraceDetailed, nil
	case "trace":
		return TraceTrace, nil
	}
	return TraceOff, fmt.Errorf("invalid trace level: %v", s)
}

// Recognizer operations reported at trace level.
const (
	opPredictor    = "PREDICTOR"
	opScanner      = "SCANNER"
	opScannerMatch = "SCANNER-MATCH"
	opCompleter    = "COMPLETER"
)

// tracer forwards structured recognizer events to a logrus sink. A nil
// tracer or a level below TraceTrace drops events; posFilter restricts
// events to a single input position.
type tracer struct {
	log       logrus.FieldLogger
	level     TraceLevel
	posFilter int
}

func (t *tracer) enabled(pos int) bool {
	if t == nil || t.log == nil || t.level < TraceTrace {
		return false
	}
	if t.posFilter >= 0 && pos != t.posFilter {
		return false
	}
	return true
}

func (t *tracer) event(op string, pos int, fields logrus.Fields) {
	if !t.enabled(pos) {
		return
	}
	fields["op"] = op
	fields["pos"] = pos
	t.log.WithFields(fields).Trace(op)
}
