// Package command executes a user-supplied command once per search result,
// on a bounded worker pool. This is the only concurrent part of ffind; the
// traversal itself stays single-threaded.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/halvard/ffind/internal/printer"
	"github.com/halvard/ffind/internal/utils"
)

// Runner fans result paths out to workers that each run one instance of
// the configured command, with {}-style placeholders expanded per result.
type Runner struct {
	argv    []string
	workers int
	logger  utils.Logger

	paths    chan string
	wg       sync.WaitGroup
	failures atomic.Int64
}

// NewRunner creates a runner for argv with the given worker count. A
// command whose arguments carry no placeholder gets the path appended.
func NewRunner(argv []string, workers int, logger utils.Logger) (*Runner, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command: empty command")
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = utils.NoopLogger{}
	}
	return &Runner{argv: argv, workers: workers, logger: logger}, nil
}

// Start launches the worker pool. Submissions after ctx is cancelled are
// discarded by the workers.
func (r *Runner) Start(ctx context.Context) {
	r.paths = make(chan string, r.workers*2)
	r.logger.Debug("command: starting %d workers", r.workers)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i+1)
	}
}

// Submit queues one result path for execution.
func (r *Runner) Submit(path string) {
	r.paths <- path
}

// Wait closes the queue and blocks until every worker has finished. It
// returns an error when any command invocation failed.
func (r *Runner) Wait() error {
	close(r.paths)
	r.wg.Wait()
	if n := r.failures.Load(); n > 0 {
		return fmt.Errorf("command: %d invocation(s) failed", n)
	}
	return nil
}

func (r *Runner) worker(ctx context.Context, id int) {
	defer r.wg.Done()
	for path := range r.paths {
		select {
		case <-ctx.Done():
			r.logger.Debug("command: worker %d cancelled", id)
			return
		default:
		}
		r.run(ctx, path)
	}
}

// run expands the template arguments for one path and executes the
// command, inheriting stdout and stderr.
func (r *Runner) run(ctx context.Context, path string) {
	args := make([]string, 0, len(r.argv))
	expanded := false
	for _, arg := range r.argv[1:] {
		if printer.HasPlaceholder(arg) {
			expanded = true
			args = append(args, printer.ExpandTemplate(arg, path))
		} else {
			args = append(args, arg)
		}
	}
	if !expanded {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, r.argv[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		r.logger.Warn("command: %s %v: %v", r.argv[0], args, err)
		r.failures.Add(1)
	}
}
