package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/go-drift/autobind/cmd/autobind/internal/script"
	"github.com/go-drift/autobind/pkg/bind"
	"github.com/go-drift/autobind/pkg/engine"
	"github.com/go-drift/autobind/pkg/errors"
	"github.com/go-drift/autobind/pkg/layout"
	"github.com/go-drift/autobind/showcase"
)

var (
	frameLabel = color.New(color.FgCyan).SprintFunc()
	stepLabel  = color.New(color.FgYellow).SprintFunc()
)

// session is one replay of the login showcase.
type session struct {
	out      io.Writer
	interval time.Duration
	clock    *engine.ManualClock
	runner   *engine.Runner
	model    *showcase.LoginViewModel
	screen   *showcase.LoginScreen
	trace    *traceView
}

func newSession(out io.Writer, interval time.Duration) *session {
	// The clock only moves when the scenario moves it.
	clk := engine.NewManualClock(time.Time{})
	pipeline := layout.NewPipelineOwner()
	runner := engine.NewRunner(pipeline, clk)
	root := layout.NewContainer(pipeline)

	s := &session{
		out:      out,
		interval: interval,
		clock:    clk,
		runner:   runner,
	}
	s.model = showcase.NewLoginViewModel(runner)
	s.screen = showcase.NewLoginScreen(root, s.model)

	// Bound after the screen on the same container, so each line shows
	// what the screen painted in that pass.
	s.trace = &traceView{session: s}
	s.trace.SetContainer(root)
	bind.Bind(s.trace, s.model)
	return s
}

// replay applies every step, then runs one more frame if a refresh is
// still pending so the trace ends on the final state.
func (s *session) replay(sc *script.Scenario) error {
	for _, step := range sc.Steps {
		if err := s.apply(step); err != nil {
			return &errors.BindError{Op: "cmd.run", Kind: errors.KindParsing, Err: err}
		}
	}
	if s.runner.NeedsFrame() {
		s.frame()
	}
	return nil
}

func (s *session) apply(step script.Step) error {
	switch step.Kind {
	case script.KindType:
		switch step.Target {
		case "email":
			s.screen.Email.SetText(step.Value)
		case "password":
			s.screen.Password.SetText(step.Value)
		default:
			return unknownTarget(step)
		}
	case script.KindSet:
		switch step.Target {
		case "email":
			s.model.Email.Set(step.Value)
		case "password":
			s.model.Password.Set(step.Value)
		default:
			return unknownTarget(step)
		}
	case script.KindTap:
		if step.Target != "login" {
			return unknownTarget(step)
		}
		if !s.screen.Login.Tap() {
			fmt.Fprintf(s.out, "%s tap login ignored (disabled)\n", stepLabel("[step]"))
		}
	case script.KindFrame:
		for i := 0; i < step.Frames; i++ {
			s.frame()
		}
	case script.KindAdvance:
		s.clock.Advance(step.Duration)
		s.runner.StepFrame()
	default:
		return fmt.Errorf("line %d: unsupported step %q", step.Line, step.Kind)
	}
	return nil
}

// frame runs one frame and moves the clock by one frame interval.
func (s *session) frame() {
	s.runner.StepFrame()
	s.clock.Advance(s.interval)
}

func unknownTarget(step script.Step) error {
	return fmt.Errorf("line %d: unknown %s target %q", step.Line, step.Kind, step.Target)
}

// traceView prints a line per refresh.
type traceView struct {
	bind.ViewBase
	session *session
	lines   int
}

func (v *traceView) Refresh() {
	v.lines++
	label := "[init]"
	if v.lines > 1 {
		// Refreshes run inside StepFrame, before the frame counter moves.
		label = fmt.Sprintf("[frame %d]", v.session.runner.Frames()+1)
	}
	fmt.Fprintf(v.session.out, "%s %s\n", frameLabel(label), strings.Join(v.session.screen.Describe(), " | "))
}
