package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"suitedeploy/internal/domain"
)

// BusyMessage is shown when a command is dropped because another is running.
const BusyMessage = "Skipping since there is an active process currently executing."

const waitDelay = 2 * time.Second

// ErrBusy is returned by Execute when a process is already running.
var ErrBusy = errors.New("shell: another process is currently executing")

// ExitError reports a non-zero exit of the external tool.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Options configures a Runner.
type Options struct {
	Binary string
	Dir    string
	// Timeout bounds each invocation; zero means none.
	Timeout  time.Duration
	Logger   *zap.Logger
	Notifier domain.Notifier
}

// Runner executes the configured binary, one process at a time.
type Runner struct {
	binary   string
	dir      string
	timeout  time.Duration
	log      *zap.Logger
	notifier domain.Notifier

	mu      sync.Mutex
	running bool
}

// NewRunner returns a Runner for opts.
func NewRunner(opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		binary:   opts.Binary,
		dir:      opts.Dir,
		timeout:  opts.Timeout,
		log:      log.Named("shell"),
		notifier: opts.Notifier,
	}
}

// Busy reports whether a process is currently running.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Execute runs the binary with args in the working directory and returns its
// stdout. It returns ErrBusy without starting anything when another process
// is in flight.
func (r *Runner) Execute(ctx context.Context, args ...string) (string, error) {
	return r.ExecuteWith(ctx, nil, args...)
}

// ExecuteWith is Execute with a prepare step that runs while the guard is
// held, before the process starts. A dropped caller never runs prepare, and
// a prepare error is returned without starting the process.
func (r *Runner) ExecuteWith(ctx context.Context, prepare func() error, args ...string) (string, error) {
	if !r.acquire() {
		r.log.Info(BusyMessage, zap.Strings("args", args))
		if r.notifier != nil {
			r.notifier.Info(BusyMessage)
		}
		return "", ErrBusy
	}
	defer r.release()

	if prepare != nil {
		if err := prepare(); err != nil {
			return "", err
		}
	}

	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.Strings("args", args))

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir
	// Children that inherit the pipes must not hold Wait open after a kill.
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Info(fmt.Sprintf("shell.Execute %s initiated.", firstArg(args)))
	start := time.Now()
	err := cmd.Run()
	log = log.With(zap.Duration("elapsed", time.Since(start)))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Error("shell.Execute cancelled", zap.Error(ctxErr))
			return stdout.String(), fmt.Errorf("%s %s: %w", r.binary, firstArg(args), ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			e := &ExitError{
				Args:     append([]string{r.binary}, args...),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
			log.Error("shell.Execute failed", zap.Int("exit_code", e.ExitCode), zap.String("stderr", e.Stderr))
			return stdout.String(), e
		}
		log.Error("shell.Execute failed to start", zap.Error(err))
		return "", fmt.Errorf("run %s: %w", r.binary, err)
	}

	if s := strings.TrimSpace(stderr.String()); s != "" {
		log.Debug("shell.Execute stderr", zap.String("stderr", s))
	}
	log.Info(fmt.Sprintf("shell.Execute %s finished.", firstArg(args)))
	return stdout.String(), nil
}

func (r *Runner) acquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) release() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Compile-time assertion that Runner implements domain.Runner.
var _ domain.Runner = (*Runner)(nil)
