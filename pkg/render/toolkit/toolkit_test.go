package toolkit

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/adam-huganir/yutc-diagram/pkg/errors"
)

func TestDefaultDir(t *testing.T) {
	dir := DefaultDir()
	if runtime.GOOS == "windows" {
		if dir != windowsDir {
			t.Errorf("DefaultDir() = %q, want %q", dir, windowsDir)
		}
		return
	}
	if dir != "" {
		t.Errorf("DefaultDir() = %q, want empty", dir)
	}
}

func TestPrependPath(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")

	if err := PrependPath("/opt/graphviz/bin"); err != nil {
		t.Fatalf("PrependPath() error: %v", err)
	}
	want := "/opt/graphviz/bin" + string(os.PathListSeparator) + "/usr/bin"
	if got := os.Getenv("PATH"); got != want {
		t.Errorf("PATH = %q, want %q", got, want)
	}

	// Idempotent for the same dir.
	if err := PrependPath("/opt/graphviz/bin"); err != nil {
		t.Fatalf("PrependPath() error: %v", err)
	}
	if got := os.Getenv("PATH"); got != want {
		t.Errorf("PATH after repeat = %q, want %q", got, want)
	}

	// Empty dir is a no-op.
	if err := PrependPath(""); err != nil {
		t.Fatalf("PrependPath(\"\") error: %v", err)
	}
	if got := os.Getenv("PATH"); got != want {
		t.Errorf("PATH after empty = %q, want %q", got, want)
	}
}

func TestPrependPathEmptyEnv(t *testing.T) {
	t.Setenv("PATH", "")
	if err := PrependPath("/opt/gv"); err != nil {
		t.Fatalf("PrependPath() error: %v", err)
	}
	if got := os.Getenv("PATH"); got != "/opt/gv" {
		t.Errorf("PATH = %q, want /opt/gv", got)
	}
}

func TestLocateMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Locate(t.TempDir())
	if err == nil {
		t.Fatal("Locate() should fail without a toolkit")
	}
	if !errors.Is(err, errors.ErrCodeToolkitNotFound) {
		t.Errorf("Locate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeToolkitNotFound)
	}
}

func TestLocateInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}
	t.Setenv("PATH", t.TempDir())
	dir := t.TempDir()
	bin := writeFakeDot(t, dir, "#!/bin/sh\nexit 0\n")

	got, err := Locate("", dir)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got != bin {
		t.Errorf("Locate() = %q, want %q", got, bin)
	}
}

func TestLocateSkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not used on windows")
	}
	t.Setenv("PATH", t.TempDir())
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Binary), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Locate(dir); !errors.Is(err, errors.ErrCodeToolkitNotFound) {
		t.Errorf("Locate() error = %v, want TOOLKIT_NOT_FOUND", err)
	}
}

func TestRenderWithFakeToolkit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}
	dir := t.TempDir()
	// Echo the requested format followed by stdin.
	bin := writeFakeDot(t, dir, "#!/bin/sh\necho \"$1\"\ncat\n")

	out, err := Render(context.Background(), bin, "digraph { a }", "svg")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := string(out); got != "-Tsvg\ndigraph { a }" {
		t.Errorf("Render() output = %q", got)
	}
}

func TestRenderFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}
	dir := t.TempDir()
	bin := writeFakeDot(t, dir, "#!/bin/sh\necho 'syntax error in line 1' >&2\nexit 1\n")

	_, err := Render(context.Background(), bin, "garbage", "png")
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Fatalf("Render() error = %v, want RENDER_FAILED", err)
	}
	if !strings.Contains(err.Error(), "syntax error in line 1") {
		t.Errorf("Render() error should include stderr: %v", err)
	}
}

func TestRenderEmptyOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}
	bin := writeFakeDot(t, t.TempDir(), "#!/bin/sh\nexit 0\n")
	if _, err := Render(context.Background(), bin, "digraph {}", "png"); !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("Render() error = %v, want RENDER_FAILED", err)
	}
}

func TestVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}
	bin := writeFakeDot(t, t.TempDir(), "#!/bin/sh\necho 'dot - graphviz version 9.0.0 (0)' >&2\necho second >&2\n")
	v, err := Version(context.Background(), bin)
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v != "dot - graphviz version 9.0.0 (0)" {
		t.Errorf("Version() = %q", v)
	}
}

func writeFakeDot(t *testing.T, dir, script string) string {
	t.Helper()
	path := filepath.Join(dir, Binary)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}
