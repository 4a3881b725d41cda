package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rosterhq/roster/internal/schema"
)

// stubTextInputs replaces getSimpleText with a stub that returns the given
// values in order, one per prompt.
func stubTextInputs(t *testing.T, vals ...string) func() {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(vals) {
			t.Fatalf("unexpected text prompt #%d", i+1)
		}
		v := vals[i]
		i++
		return v, nil
	}
	return func() { getSimpleText = orig }
}

func stubPassword(t *testing.T, pw string) func() {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		return []byte(pw), nil
	}
	return func() { getPassword = orig }
}

// captureOutput redirects printlnFn into a line slice for assertions.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func outputContains(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type fakeSession struct {
	regIn   schema.CreateUserInput
	regUser schema.User
	regErr  error

	loginEmail string
	loginPass  string
	loginErr   error

	loggedIn     bool
	logoutCalled bool
}

func (f *fakeSession) Register(_ context.Context, in schema.CreateUserInput) (schema.User, error) {
	f.regIn = in
	if f.regErr != nil {
		return schema.User{}, f.regErr
	}
	return f.regUser, nil
}

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeSession) Logout() {
	f.logoutCalled = true
	f.loggedIn = false
}

func (f *fakeSession) LoggedIn() bool { return f.loggedIn }

func TestRegister_PassesInputAndStaysSignedOut(t *testing.T) {
	restoreText := stubTextInputs(t, "Ana", "ana@example.org")
	defer restoreText()
	restorePw := stubPassword(t, "Passw0rd")
	defer restorePw()
	out := captureOutput(t)

	f := &fakeSession{regUser: schema.User{ID: "u1", Email: "ana@example.org"}}
	a := &App{session: f}

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	want := schema.CreateUserInput{Name: "Ana", Email: "ana@example.org", Password: "Passw0rd"}
	if f.regIn != want {
		t.Fatalf("Register input mismatch: %+v", f.regIn)
	}
	if a.isLoggedIn() {
		t.Fatalf("registration must not sign the user in")
	}
	if !outputContains(*out, "Use 'login' to sign in") {
		t.Fatalf("missing confirmation, output: %v", *out)
	}
}

func TestRegister_ErrorIsReported(t *testing.T) {
	restoreText := stubTextInputs(t, "Ana", "ana@example.org")
	defer restoreText()
	restorePw := stubPassword(t, "Passw0rd")
	defer restorePw()
	out := captureOutput(t)

	f := &fakeSession{regErr: errors.New("email already registered")}
	a := &App{session: f}

	if err := a.Register(context.Background()); err == nil {
		t.Fatalf("want error from session")
	}
	if !outputContains(*out, "Registration failed") {
		t.Fatalf("failure not reported, output: %v", *out)
	}
}

func TestLogin_SetsPromptStatus(t *testing.T) {
	restoreText := stubTextInputs(t, "ana@example.org")
	defer restoreText()
	restorePw := stubPassword(t, "Passw0rd")
	defer restorePw()
	captureOutput(t)

	f := &fakeSession{}
	a := &App{session: f}

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginEmail != "ana@example.org" || f.loginPass != "Passw0rd" {
		t.Fatalf("credentials not passed: %q %q", f.loginEmail, f.loginPass)
	}
	if got := a.status(); got != "(ana@example.org)" {
		t.Fatalf("status after login: %q", got)
	}
}

func TestLogin_FailureKeepsSignedOut(t *testing.T) {
	restoreText := stubTextInputs(t, "ana@example.org")
	defer restoreText()
	restorePw := stubPassword(t, "wrong")
	defer restorePw()
	out := captureOutput(t)

	f := &fakeSession{loginErr: errors.New("unauthorized")}
	a := &App{session: f}

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want login error")
	}
	if a.status() != "" {
		t.Fatalf("status must stay empty after failed login, got %q", a.status())
	}
	if !outputContains(*out, "Login failed") {
		t.Fatalf("failure not reported, output: %v", *out)
	}
}

func TestLogout_ClearsStatus(t *testing.T) {
	captureOutput(t)

	f := &fakeSession{loggedIn: true}
	a := &App{session: f, userEmail: "ana@example.org"}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatalf("session Logout not called")
	}
	if a.status() != "" {
		t.Fatalf("status not cleared: %q", a.status())
	}
}
