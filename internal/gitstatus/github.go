package gitstatus

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// GitHubProvider computes ahead/behind via the GitHub compare API when
// the project's upstream lives on github.com. It needs local git only to
// discover the remote URL, branch, and HEAD commit; the comparison itself
// is a single read-only API call. Used as a fallback when local metadata
// is insufficient (for example shallow CI clones without remote refs).
type GitHubProvider struct {
	token string
	local ExecProvider
}

// NewGitHubProvider builds a provider with the given access token.
// An empty token still works for public repositories.
func NewGitHubProvider(token string) *GitHubProvider {
	return &GitHubProvider{token: token}
}

var githubRemote = regexp.MustCompile(`github\.com[:/]([\w.-]+)/([\w.-]+?)(?:\.git)?$`)

func (p *GitHubProvider) Status(ctx context.Context, root string) (*RepoStatus, bool) {
	remoteURL, ok := p.local.git(ctx, root, "config", "--get", "remote.origin.url")
	if !ok {
		return nil, false
	}
	m := githubRemote.FindStringSubmatch(remoteURL)
	if m == nil {
		return nil, false
	}
	owner, repo := m[1], m[2]

	branch, ok := p.local.git(ctx, root, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || branch == "" || branch == "HEAD" {
		return nil, false
	}
	head, ok := p.local.git(ctx, root, "rev-parse", "HEAD")
	if !ok || head == "" {
		return nil, false
	}

	cmpCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmpCtx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	client := p.client()
	cmp, _, err := client.Repositories.CompareCommits(cmpCtx, owner, repo, branch, head, nil)
	if err != nil {
		return nil, false
	}

	behind := cmp.GetBehindBy()
	ahead := cmp.GetAheadBy()
	return &RepoStatus{
		HasRemoteUpdates: behind > 0,
		RemoteBranch:     "origin/" + branch,
		CommitsBehind:    behind,
		CommitsAhead:     ahead,
	}, true
}

func (p *GitHubProvider) client() *github.Client {
	transport := http.DefaultTransport
	if p.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	return github.NewClient(&http.Client{Transport: transport})
}
