package showcase

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/autobind/pkg/bind"
	bindtest "github.com/go-drift/autobind/pkg/testing"
)

type loginFixture struct {
	tester   *bindtest.Tester
	model    *LoginViewModel
	screen   *LoginScreen
	recorder *bindtest.RefreshRecorder
}

// newLoginFixture binds a recorder to the same container after the screen,
// so every recorded frame is what the screen painted in that pass.
func newLoginFixture(t *testing.T) *loginFixture {
	tester := bindtest.NewTesterWithT(t)
	model := NewLoginViewModel(tester.Runner())
	screen := NewLoginScreen(tester.Root(), model)
	recorder := &bindtest.RefreshRecorder{
		Snapshot: func() string { return strings.Join(screen.Describe(), "\n") },
	}
	recorder.SetContainer(tester.Root())
	bind.Bind(recorder, model)
	return &loginFixture{tester: tester, model: model, screen: screen, recorder: recorder}
}

func TestLoginScreen_InitialState(t *testing.T) {
	f := newLoginFixture(t)

	want := []string{
		`label "Welcome, –"`,
		`field [Email]`,
		`field [Password]`,
		`button "Login" disabled`,
		`spinner stopped`,
	}
	if diff := cmp.Diff(want, f.screen.Describe()); diff != "" {
		t.Errorf("initial screen mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginScreen_EmailThenPassword(t *testing.T) {
	f := newLoginFixture(t)

	f.model.Email.Set("a@b.com")
	f.tester.Pump()

	if f.recorder.Count() != 2 {
		t.Fatalf("Expected one refresh for the frame, got %d total", f.recorder.Count())
	}
	if f.screen.Login.Enabled() {
		t.Error("login should stay disabled while the password is empty")
	}
	if got := f.screen.Title.Text(); got != "Welcome, a@b.com" {
		t.Errorf("title = %q, want %q", got, "Welcome, a@b.com")
	}

	f.model.Password.Set("x")
	f.tester.Pump()

	if f.recorder.Count() != 3 {
		t.Fatalf("Expected one refresh for the second frame, got %d total", f.recorder.Count())
	}
	if !f.screen.Login.Enabled() {
		t.Error("login should be enabled once both fields are filled")
	}
}

func TestLoginScreen_TypingIsCoalescedPerFrame(t *testing.T) {
	f := newLoginFixture(t)

	for _, prefix := range []string{"a", "a@", "a@b", "a@b.", "a@b.c", "a@b.co", "a@b.com"} {
		f.screen.Email.SetText(prefix)
	}
	f.screen.Password.SetText("secret")
	f.tester.Pump()

	if f.recorder.Count() != 2 {
		t.Errorf("Expected a single refresh for all keystrokes, got %d total", f.recorder.Count())
	}
	if f.model.Email.Value() != "a@b.com" {
		t.Errorf("model email = %q, want %q", f.model.Email.Value(), "a@b.com")
	}
	want := strings.Join([]string{
		`label "Welcome, a@b.com"`,
		`field "a@b.com"`,
		`field "••••••"`,
		`button "Login" enabled`,
		`spinner stopped`,
	}, "\n")
	if diff := cmp.Diff(want, f.recorder.Last()); diff != "" {
		t.Errorf("painted frame mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginScreen_LoginCycle(t *testing.T) {
	f := newLoginFixture(t)
	f.screen.Email.SetText("a@b.com")
	f.screen.Password.SetText("x")
	f.tester.Pump()

	if !f.screen.Login.Tap() {
		t.Fatal("login button should accept the tap")
	}
	f.tester.Pump()

	if !f.screen.Spinner.IsAnimating() {
		t.Error("spinner should run while logging in")
	}
	if f.screen.Login.Enabled() {
		t.Error("login should be disabled while logging in")
	}
	if f.screen.Login.Tap() {
		t.Error("a second tap should be rejected")
	}

	f.tester.Advance(LoginDuration)

	if f.screen.Spinner.IsAnimating() {
		t.Error("spinner should stop when the login finishes")
	}
	if !f.screen.Login.Enabled() {
		t.Error("login should be enabled again")
	}
	if err := f.tester.PumpAndSettle(LoginDuration); err != nil {
		t.Errorf("expected the screen to settle: %v", err)
	}
}

func TestLoginScreen_NoRefreshAfterDispose(t *testing.T) {
	f := newLoginFixture(t)
	f.screen.Dispose()

	f.model.Email.Set("late@b.com")
	f.tester.Pump()

	if got := f.screen.Title.Text(); got != "Welcome, –" {
		t.Errorf("disposed screen should keep its last paint, got %q", got)
	}
	f.screen.Email.SetText("typed")
	if f.model.Email.Value() != "late@b.com" {
		t.Error("input forwarding should end with the screen")
	}
}

func TestLoginViewModel_Derived(t *testing.T) {
	tester := bindtest.NewTesterWithT(t)
	m := NewLoginViewModel(tester.Runner())

	if m.IsInputValid() || m.IsLoginButtonEnabled() {
		t.Error("empty form should be invalid")
	}
	m.Email.Set("a@b.com")
	m.Password.Set("x")
	if !m.IsLoginButtonEnabled() {
		t.Error("filled form should enable login")
	}
	m.Login()
	m.Login()
	if tester.Runner().PendingTimers() != 1 {
		t.Errorf("repeated login should schedule one timer, got %d", tester.Runner().PendingTimers())
	}
	if m.IsLoginButtonEnabled() {
		t.Error("login should be disabled while loading")
	}
	tester.Advance(LoginDuration)
	if m.IsLoading() {
		t.Error("login should finish after LoginDuration")
	}
}

func TestLoginScreen_ModelWritesReachFields(t *testing.T) {
	f := newLoginFixture(t)

	f.model.Email.Set("a@b.com")
	f.model.Password.Set("pw")
	f.tester.Pump()

	if got := f.screen.Email.Text(); got != "a@b.com" {
		t.Errorf("email field = %q, want %q", got, "a@b.com")
	}
	if got := f.screen.Password.Describe(); got != `field "••"` {
		t.Errorf("password field = %q", got)
	}
}
