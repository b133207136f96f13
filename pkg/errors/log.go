package errors

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	panicLabel   = color.New(color.FgMagenta, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
)

// LogHandler is an ErrorHandler that logs to stderr, or to Out when set.
// Labels are coloured unless color.NoColor is set.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means stderr.
	Out io.Writer

	logger *log.Logger
}

func (h *LogHandler) log() *log.Logger {
	if h.logger == nil {
		out := h.Out
		if out == nil {
			out = os.Stderr
		}
		h.logger = log.New(out, "", 0)
	}
	return h.logger
}

// HandleError logs a BindError.
func (h *LogHandler) HandleError(err *BindError) {
	if err == nil {
		return
	}
	if h.Verbose {
		h.log().Printf("%s %s [%s]: %v", errorLabel("[autobind error]"), err.Op, err.Kind, err.Err)
		if err.StackTrace != "" {
			h.log().Printf("Stack trace:\n%s", err.StackTrace)
		}
		return
	}
	h.log().Printf("%s %s: %v", errorLabel("[autobind error]"), err.Op, err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		h.log().Printf("%s %s: %v", panicLabel("[autobind panic]"), err.Op, err.Value)
	} else {
		h.log().Printf("%s %v", panicLabel("[autobind panic]"), err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		h.log().Printf("Stack trace:\n%s", err.StackTrace)
	}
}

// HandleWarning logs a Warning.
func (h *LogHandler) HandleWarning(w *Warning) {
	if w == nil {
		return
	}
	h.log().Printf("%s %s", warningLabel("[autobind warning]"), w.String())
}
