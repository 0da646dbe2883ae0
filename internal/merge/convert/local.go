package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
)

// CommandRunner abstracts subprocess execution so conversion can be tested
// without a real unoconv install.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// the converter ran and reported failure; not a spawn error
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, -1, err
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// Local converts documents by invoking unoconv as a subprocess. The document
// is staged in a temporary file that is removed on every exit path.
type Local struct {
	pythonPath  string
	unoconvPath string
	formats     map[string]Format
	runner      CommandRunner
}

// NewLocal creates a local converter. pythonPath may be empty when unoconv
// is directly executable.
func NewLocal(pythonPath, unoconvPath string, formats map[string]Format) *Local {
	return &Local{
		pythonPath:  pythonPath,
		unoconvPath: unoconvPath,
		formats:     formats,
		runner:      ExecRunner{},
	}
}

// NewLocalWithRunner is like NewLocal with a custom runner, for tests.
func NewLocalWithRunner(pythonPath, unoconvPath string, formats map[string]Format, runner CommandRunner) *Local {
	l := NewLocal(pythonPath, unoconvPath, formats)
	l.runner = runner
	return l
}

func (l *Local) Convert(ctx context.Context, document []byte, format string) (*Result, error) {
	f, ok := l.formats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	tmpPath, cleanup, err := writeTempDocument(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer cleanup()

	name := l.unoconvPath
	args := []string{"--format", format, "--stdout", tmpPath}
	if l.pythonPath != "" {
		name = l.pythonPath
		args = append([]string{l.unoconvPath}, args...)
	}

	stdout, stderr, exitCode, err := l.runner.Run(ctx, name, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: run %s: %v", ErrTransport, l.unoconvPath, err)
	}

	status := http.StatusOK
	if exitCode != 0 {
		// surface the converter's own output as the failure body
		status = http.StatusInternalServerError
		if len(stdout) == 0 {
			stdout = stderr
		}
	}

	return &Result{
		Content:     stdout,
		Status:      status,
		ContentType: f.MIME,
		Extension:   format,
	}, nil
}

// writeTempDocument stages the document in a temp file and returns its path
// with a cleanup function removing it.
func writeTempDocument(document []byte) (path string, cleanup func(), err error) {
	tmp, err := os.CreateTemp("", "docmerge-*.tmp")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmp.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}
