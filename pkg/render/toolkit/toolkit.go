// Package toolkit drives a natively installed Graphviz toolkit.
//
// The in-process renderer covers the common formats; a native install is
// still useful for output formats or plugins the embedded build lacks, or to
// match exactly what `dot` produces on a developer machine. Graphviz on
// Windows does not add itself to PATH, so [PrependPath] and [Locate] accept
// the installation's bin directory explicitly, defaulting to
// [DefaultDir].
package toolkit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adam-huganir/yutc-diagram/pkg/errors"
)

// Binary is the name of the Graphviz layout executable.
const Binary = "dot"

// windowsDir is where the official Windows installer puts the binaries.
const windowsDir = `C:\Program Files\Graphviz\bin`

// DefaultDir returns the conventional Graphviz bin directory for the current
// platform, or "" where Graphviz is expected on PATH already.
func DefaultDir() string {
	if runtime.GOOS == "windows" {
		return windowsDir
	}
	return ""
}

// PrependPath puts dir in front of the process PATH so that Graphviz and
// any helper it spawns are found there first. An empty dir is a no-op, as is
// a dir already at the front of PATH.
func PrependPath(dir string) error {
	if dir == "" {
		return nil
	}
	cur := os.Getenv("PATH")
	list := filepath.SplitList(cur)
	if len(list) > 0 && list[0] == dir {
		return nil
	}
	if cur == "" {
		return os.Setenv("PATH", dir)
	}
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+cur)
}

// Locate finds the dot executable, trying each dir in order before falling
// back to PATH. It returns an error with code TOOLKIT_NOT_FOUND when no
// candidate exists.
func Locate(dirs ...string) (string, error) {
	name := Binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	path, err := exec.LookPath(Binary)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeToolkitNotFound, err,
			"graphviz %q not found in %s or PATH; install Graphviz or pass --toolkit-dir", Binary, describe(dirs))
	}
	return path, nil
}

func describe(dirs []string) string {
	var nonEmpty []string
	for _, d := range dirs {
		if d != "" {
			nonEmpty = append(nonEmpty, d)
		}
	}
	if len(nonEmpty) == 0 {
		return "no toolkit directory"
	}
	return strings.Join(nonEmpty, ", ")
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

// Render runs `bin -T<format>` with the DOT source on stdin and returns
// stdout. Graphviz diagnostics on stderr are included in the error.
func Render(ctx context.Context, bin, dot, format string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, "-T"+format)
	cmd.Stdin = strings.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s -T%s: %s", filepath.Base(bin), format, strings.TrimSpace(errBuf.String()))
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "%s -T%s produced no output", filepath.Base(bin), format)
	}
	return out.Bytes(), nil
}

// Version returns the first line Graphviz prints for `dot -V`.
func Version(ctx context.Context, bin string) (string, error) {
	// dot -V writes to stderr.
	out, err := exec.CommandContext(ctx, bin, "-V").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s -V: %w", bin, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}
