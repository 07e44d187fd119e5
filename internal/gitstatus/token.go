package gitstatus

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ResolveToken finds a GitHub access token for the API provider.
//
// Precedence:
//  1. GITHUB_TOKEN environment variable
//  2. GitHub CLI: `gh auth token`
//
// Absence of a token is not an error; the API provider then runs
// unauthenticated (public repositories only).
func ResolveToken(ctx context.Context) string {
	if env := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); env != "" {
		return env
	}

	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}

	// Bounded so a broken gh config or credential helper cannot hang a
	// governance run.
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	out, err := exec.CommandContext(cmdCtx, "gh", "auth", "token").Output()
	if err != nil {
		return ""
	}
	tok := strings.TrimSpace(string(out))
	if tok == "" || strings.ContainsAny(tok, " \t\n\r") {
		return ""
	}
	return tok
}

// Detect assembles the default provider chain: local git metadata first,
// then the GitHub compare API.
func Detect(ctx context.Context) Provider {
	return Chain{
		&ExecProvider{},
		NewGitHubProvider(ResolveToken(ctx)),
	}
}
