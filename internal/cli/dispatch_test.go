package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tada/internal/cli"
	"tada/internal/commands"
	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/gateway"
	"tada/internal/service"
	"tada/internal/testutil"
)

func newDispatcher(fake *testutil.FakeService) *cli.Dispatcher {
	factory := func(cfg *config.Config, gw *gateway.Gateway) (service.Service, error) {
		return fake, nil
	}
	return cli.NewDispatcher(commands.DefaultRegistry, factory)
}

func dispatch(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_UnknownCommand(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())

	code, _, stderr := dispatch(t, d, "frobnicate")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if stderr != "error: unknown command: frobnicate\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())

	code, _, stderr := dispatch(t, d, "--quiet", "list")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())

	code, _, stderr := dispatch(t, d, "version", "--bogus")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if stderr != "error: unknown flag: -bogus\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_NeedsAuthGating(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	dir := t.TempDir()

	code, _, stderr := dispatch(t, d, "list", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if stderr != "error: not logged in (run: tada login)\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_LoginThenList(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "", false)
	d := newDispatcher(fake)
	dir := t.TempDir()

	code, stdout, stderr := dispatch(t, d, "login", "--config", dir, "--password", "pw", "a@x.com")
	if code != exitcode.Success {
		t.Fatalf("login exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("login stdout = %q", stdout)
	}

	// The persisted token carries the next invocation past the auth gate.
	code, stdout, stderr = dispatch(t, d, "list", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("list exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Buy milk") {
		t.Errorf("list stdout = %q", stdout)
	}
}

func TestRun_NoArgsDefaultsToList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	d := newDispatcher(testutil.NewFakeService())

	code, _, stderr := dispatch(t, d)
	if code != exitcode.AuthError {
		t.Errorf("exit code = %d, want %d (no session)", code, exitcode.AuthError)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_Aliases(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "", false)
	d := newDispatcher(fake)
	dir := t.TempDir()

	if code, _, stderr := dispatch(t, d, "login", "--config", dir, "--password", "pw", "a@x.com"); code != exitcode.Success {
		t.Fatalf("login: %s", stderr)
	}

	code, _, stderr := dispatch(t, d, "done", "--config", dir, "1")
	if code != exitcode.Success {
		t.Fatalf("done exit code = %d, stderr: %s", code, stderr)
	}
	if got, _ := fake.TaskByID(1); !got.Completed {
		t.Error("done alias did not toggle")
	}

	code, stdout, _ := dispatch(t, d, "ls", "--config", dir, "-f", "completed")
	if code != exitcode.Success {
		t.Fatalf("ls exit code = %d", code)
	}
	if !strings.Contains(stdout, "[x]") {
		t.Errorf("ls stdout = %q", stdout)
	}
}

func TestRun_AuthCommandsSkipGate(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	dir := t.TempDir()

	code, stdout, _ := dispatch(t, d, "logout", "--config", dir)
	if code != exitcode.Success {
		t.Errorf("logout exit code = %d", code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("logout stdout = %q", stdout)
	}

	code, stdout, _ = dispatch(t, d, "version", "--config", dir)
	if code != exitcode.Success {
		t.Errorf("version exit code = %d", code)
	}
	if !strings.HasPrefix(stdout, "tada ") {
		t.Errorf("version stdout = %q", stdout)
	}
}
