package gitstatus

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ExecProvider computes ahead/behind from local repository metadata via
// the git CLI. It is read-only and bounded: a hanging git call degrades
// to absence instead of blocking the run.
type ExecProvider struct {
	// Timeout bounds each git invocation. Zero means the default.
	Timeout time.Duration
}

const defaultGitTimeout = 5 * time.Second

func (p *ExecProvider) Status(ctx context.Context, root string) (*RepoStatus, bool) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, false
	}

	upstream, ok := p.git(ctx, root, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if !ok || upstream == "" {
		return nil, false
	}

	counts, ok := p.git(ctx, root, "rev-list", "--left-right", "--count", "@{upstream}...HEAD")
	if !ok {
		return nil, false
	}
	fields := strings.Fields(counts)
	if len(fields) != 2 {
		return nil, false
	}
	behind, err1 := strconv.Atoi(fields[0])
	ahead, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return nil, false
	}

	return &RepoStatus{
		HasRemoteUpdates: behind > 0,
		RemoteBranch:     upstream,
		CommitsBehind:    behind,
		CommitsAhead:     ahead,
	}, true
}

func (p *ExecProvider) git(ctx context.Context, root string, args ...string) (string, bool) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultGitTimeout
	}
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, "git", args...)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}
