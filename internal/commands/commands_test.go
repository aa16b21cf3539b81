package commands_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tada/internal/commands"
	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/gateway"
	"tada/internal/session"
	"tada/internal/testutil"
)

// env wires a command's collaborators around a fake service.
type env struct {
	cfg  *config.Config
	sess *session.Session
	fake *testutil.FakeService
	out  bytes.Buffer
	err  bytes.Buffer
}

func newEnv(t *testing.T, loggedIn bool) *env {
	t.Helper()

	e := &env{
		cfg:  &config.Config{Dir: t.TempDir()},
		fake: testutil.NewFakeService(),
	}
	gw, err := gateway.New("http://localhost:8080")
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	e.sess = session.New(e.cfg, gw, e.fake)
	if loggedIn {
		if err := e.cfg.WriteToken("t1"); err != nil {
			t.Fatalf("write token: %v", err)
		}
		if _, err := e.sess.Restore(); err != nil {
			t.Fatalf("restore: %v", err)
		}
	}
	return e
}

func (e *env) run(cmd commands.Command, args ...string) int {
	return cmd.Run(context.Background(), e.cfg, e.sess, e.fake, args, &e.out, &e.err)
}

// newFlagSet parses a command's flags the way the dispatcher does.
func newFlagSet(cmd commands.Command) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	return fs
}

func TestLoginCmd(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.LoginCmd{}
	cmd.SetPassword("pw")

	if code := e.run(cmd, "a@x.com"); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if e.out.String() != "ok\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
	if !e.sess.Active() {
		t.Error("session not active after login")
	}
	if !e.cfg.HasToken() {
		t.Error("token not persisted")
	}
}

func TestLoginCmd_BadCredentials(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.LoginCmd{}
	cmd.SetPassword("wrong")

	if code := e.run(cmd, "a@x.com"); code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(e.err.String(), "Invalid email/password") {
		t.Errorf("stderr = %q, want the server message", e.err.String())
	}
	if e.sess.Active() {
		t.Error("session active after failed login")
	}
}

func TestLoginCmd_MissingEmail(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.LoginCmd{}
	cmd.SetPassword("pw")

	if code := e.run(cmd); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if len(e.fake.Calls) != 0 {
		t.Errorf("requests issued without email: %v", e.fake.Calls)
	}
}

func TestSignupCmd(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.SignupCmd{}
	cmd.SetPassword("secret")

	if code := e.run(cmd, "Bob", "b@x.com"); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if !e.sess.Active() {
		t.Error("session not active after signup")
	}
	if n := e.fake.CallCount("Login"); n != 1 {
		t.Errorf("signup chained into %d logins, want 1", n)
	}
}

func TestSignupCmd_Duplicate(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.SignupCmd{}
	cmd.SetPassword("pw")

	if code := e.run(cmd, "Ann", "a@x.com"); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(e.err.String(), "already exists") {
		t.Errorf("stderr = %q", e.err.String())
	}
	if n := e.fake.CallCount("Login"); n != 0 {
		t.Errorf("failed signup chained into %d logins", n)
	}
}

func TestLogoutCmd(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.LogoutCmd{}

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.sess.Active() || e.cfg.HasToken() {
		t.Error("session or token still around after logout")
	}
}

func TestLogoutCmd_NotLoggedIn(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.LogoutCmd{}

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.out.String() != "not logged in\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestListCmd(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Buy milk", "2 liters", false)
	e.fake.AddTask("Ship it", "", true)
	cmd := &commands.ListCmd{}

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	testutil.GoldenString(t, "list", e.out.String())
}

func TestListCmd_FilterActive(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Buy milk", "", false)
	e.fake.AddTask("Ship it", "", true)
	cmd := &commands.ListCmd{}
	cmd.SetFilter("active")

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	out := e.out.String()
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "Ship it") {
		t.Errorf("active view = %q", out)
	}
}

func TestListCmd_BadFilter(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.ListCmd{}
	cmd.SetFilter("bogus")

	if code := e.run(cmd); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if n := e.fake.CallCount("ListTasks"); n != 0 {
		t.Errorf("bad filter still hit the server %d times", n)
	}
}

func TestListCmd_Empty(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.ListCmd{}

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.out.String() != "no tasks\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestAddCmd(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.AddCmd{}

	if code := e.run(cmd, "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if e.out.String() != "created 1\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
	if n := e.fake.CallCount("CreateTask(Buy milk)"); n != 1 {
		t.Errorf("title not joined from args: %v", e.fake.Calls)
	}
}

func TestAddCmd_EmptyTitle(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.AddCmd{}

	if code := e.run(cmd); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if e.err.String() != "error: title required\n" {
		t.Errorf("stderr = %q", e.err.String())
	}
	if n := e.fake.CallCount("CreateTask"); n != 0 {
		t.Errorf("empty title issued %d create requests", n)
	}
}

func TestToggleCmd(t *testing.T) {
	e := newEnv(t, true)
	id := e.fake.AddTask("Buy milk", "", false)
	cmd := &commands.ToggleCmd{}

	if code := e.run(cmd, "1"); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if got, _ := e.fake.TaskByID(id); !got.Completed {
		t.Error("task not toggled")
	}
}

func TestToggleCmd_BadID(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.ToggleCmd{}

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-3"}, {"1", "2"}} {
		e.out.Reset()
		e.err.Reset()
		if code := e.run(cmd, args...); code != exitcode.UserError {
			t.Errorf("args %v: exit code = %d, want %d", args, code, exitcode.UserError)
		}
	}
	if len(e.fake.Calls) != 0 {
		t.Errorf("invalid ids issued requests: %v", e.fake.Calls)
	}
}

func TestEditCmd(t *testing.T) {
	e := newEnv(t, true)
	id := e.fake.AddTask("Old", "keep me", false)
	cmd := &commands.EditCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"--title", "New", "1"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if code := e.run(cmd, fs.Args()...); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	got, _ := e.fake.TaskByID(id)
	if got.Title != "New" {
		t.Errorf("title = %q, want New", got.Title)
	}
	if got.Description != "keep me" {
		t.Errorf("description = %q, want the old value", got.Description)
	}
}

func TestEditCmd_NothingToChange(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Old", "", false)
	cmd := &commands.EditCmd{}

	if code := e.run(cmd, "1"); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if len(e.fake.Calls) != 0 {
		t.Errorf("no-op edit issued requests: %v", e.fake.Calls)
	}
}

func TestRmCmd(t *testing.T) {
	e := newEnv(t, true)
	id := e.fake.AddTask("drop me", "", false)
	cmd := &commands.RmCmd{}

	if code := e.run(cmd, "1"); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if _, ok := e.fake.TaskByID(id); ok {
		t.Error("task still present after rm")
	}
}

func TestRmCmd_NotFound(t *testing.T) {
	e := newEnv(t, true)
	cmd := &commands.RmCmd{}

	if code := e.run(cmd, "42"); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if e.err.String() != "error: task not found\n" {
		t.Errorf("stderr = %q", e.err.String())
	}
}

func TestAttachCmd(t *testing.T) {
	e := newEnv(t, true)
	id := e.fake.AddTask("Buy milk", "", false)
	e.fake.Attachments[id] = []string{"https://files.example.com/tasks/1/receipt.pdf"}
	cmd := &commands.AttachCmd{}

	if code := e.run(cmd, "1"); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(e.out.String(), "receipt.pdf") {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestAttachCmd_None(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Buy milk", "", false)
	cmd := &commands.AttachCmd{}

	if code := e.run(cmd, "1"); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.out.String() != "no attachments\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestUploadCmd(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Buy milk", "", false)
	path := filepath.Join(t.TempDir(), "receipt.txt")
	if err := os.WriteFile(path, []byte("total: 3.50"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cmd := &commands.UploadCmd{}

	if code := e.run(cmd, "1", path); code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr: %s", code, e.err.String())
	}
	if n := e.fake.CallCount("UploadAttachments(1,1 files)"); n != 1 {
		t.Errorf("upload calls: %v", e.fake.Calls)
	}
	// The re-fetched list lands on stdout.
	if !strings.Contains(e.out.String(), "receipt.txt") {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestUploadCmd_MissingFile(t *testing.T) {
	e := newEnv(t, true)
	e.fake.AddTask("Buy milk", "", false)
	cmd := &commands.UploadCmd{}

	if code := e.run(cmd, "1", filepath.Join(t.TempDir(), "absent.txt")); code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if n := e.fake.CallCount("UploadAttachments"); n != 0 {
		t.Errorf("unreadable file still uploaded: %v", e.fake.Calls)
	}
}

func TestVersionCmd(t *testing.T) {
	e := newEnv(t, false)
	cmd := &commands.VersionCmd{}

	if code := e.run(cmd); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.out.String() != "tada "+commands.Version+"\n" {
		t.Errorf("stdout = %q", e.out.String())
	}
}

func TestQuietSuppressesConfirmations(t *testing.T) {
	e := newEnv(t, true)
	e.cfg.Quiet = true
	cmd := &commands.AddCmd{}

	if code := e.run(cmd, "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if e.out.String() != "" {
		t.Errorf("quiet mode printed %q", e.out.String())
	}
}
