package boxes

import (
	"fmt"

	"github.com/benoitkugler/paginate/utils"
	"github.com/charmbracelet/log"
)

// Warning is a non fatal layout condition.
type Warning struct {
	Code    utils.Code
	Element Element // may be nil
	Message string
}

func (w Warning) String() string {
	if w.Element == nil {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s %s)", w.Code, w.Message, w.Element.Type(), w.Element.Box().ID)
}

// Observer is notified of layout events.
// It is provided by the caller through a [Context].
type Observer interface {
	// Warn reports a recovered condition, like an over-committed dimension
	// or an element overflowing a page.
	Warn(w Warning)
	// Debug traces the progress of the layout.
	Debug(msg string, keyvals ...interface{})
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) Warn(Warning)                  {}
func (NoopObserver) Debug(string, ...interface{}) {}

// LogObserver forwards the events to a logger.
type LogObserver struct {
	Logger *log.Logger
}

func (lo LogObserver) Warn(w Warning) {
	keyvals := []interface{}{"code", w.Code}
	if w.Element != nil {
		keyvals = append(keyvals, "element", w.Element.Type(), "id", w.Element.Box().ID)
	}
	lo.Logger.Warn(w.Message, keyvals...)
}

func (lo LogObserver) Debug(msg string, keyvals ...interface{}) {
	lo.Logger.Debug(msg, keyvals...)
}

// Collector records the warnings it receives.
// It is typically used in tests.
type Collector struct {
	Warnings []Warning
}

func (c *Collector) Warn(w Warning) { c.Warnings = append(c.Warnings, w) }

func (c *Collector) Debug(string, ...interface{}) {}

// Codes returns the codes of the recorded warnings.
func (c *Collector) Codes() []utils.Code {
	out := make([]utils.Code, len(c.Warnings))
	for i, w := range c.Warnings {
		out[i] = w.Code
	}
	return out
}
