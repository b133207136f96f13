package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

type testHandler struct {
	onError   func(*BindError)
	onPanic   func(*PanicError)
	onWarning func(*Warning)
}

func (h *testHandler) HandleError(err *BindError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleWarning(w *Warning) {
	if h.onWarning != nil {
		h.onWarning(w)
	}
}

func TestBindErrorString(t *testing.T) {
	err := &BindError{
		Op:   "config.Load",
		Kind: KindConfig,
		Err:  stderrors.New("bad frame_interval"),
	}
	want := "config.Load [config]: bad frame_interval"
	if got := err.Error(); got != want {
		t.Errorf("BindError.Error() = %q, want %q", got, want)
	}
}

func TestBindErrorUnwrap(t *testing.T) {
	inner := &ParseError{Source: "login.yaml", Field: "frame", Got: "x"}
	err := &BindError{Op: "script.Parse", Kind: KindParsing, Err: inner}

	var pe *ParseError
	if !stderrors.As(err, &pe) {
		t.Fatal("expected errors.As to find the ParseError")
	}
	if pe.Field != "frame" {
		t.Errorf("Field = %q, want %q", pe.Field, "frame")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindParsing, "parsing"},
		{KindBind, "bind"},
		{KindRefresh, "refresh"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "engine.StepFrame"
	if got, want := err.Error(), "panic in engine.StepFrame: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *BindError
	prev := SetHandler(&testHandler{onError: func(err *BindError) { captured = err }})
	defer SetHandler(prev)

	Report(&BindError{Op: "test.op", Kind: KindBind, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	prev := SetHandler(&testHandler{onError: func(*BindError) { called = true }})
	defer SetHandler(prev)

	Report(nil)
	ReportPanic(nil)

	if called {
		t.Error("nil errors should not reach the handler")
	}
}

func TestWarn(t *testing.T) {
	var captured *Warning
	prev := SetHandler(&testHandler{onWarning: func(w *Warning) { captured = w }})
	defer SetHandler(prev)

	Warn("core.Register", "late registration")

	if captured == nil {
		t.Fatal("expected warning to be captured")
	}
	if got, want := captured.String(), "core.Register: late registration"; got != want {
		t.Errorf("Warning.String() = %q, want %q", got, want)
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	prev := SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(prev)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	prev := SetHandler(&testHandler{})
	defer SetHandler(prev)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)

	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(&BindError{Op: "config.Load", Kind: KindConfig, Err: stderrors.New("missing")})
	h.HandlePanic(&PanicError{Op: "engine.StepFrame", Value: "boom"})
	h.HandleWarning(&Warning{Op: "core.Register", Message: "late"})

	want := "[autobind error] config.Load: missing\n" +
		"[autobind panic] engine.StepFrame: boom\n" +
		"[autobind warning] core.Register: late\n"
	if got := buf.String(); got != want {
		t.Errorf("log output = %q, want %q", got, want)
	}
}
