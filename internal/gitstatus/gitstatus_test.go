package gitstatus

import (
	"context"
	"testing"
	"time"
)

func TestExecProviderNonRepositoryDegrades(t *testing.T) {
	p := &ExecProvider{Timeout: 2 * time.Second}
	status, ok := p.Status(context.Background(), t.TempDir())
	if ok || status != nil {
		t.Errorf("expected absence for non-repository, got %+v", status)
	}
}

func TestChainEmptyDegrades(t *testing.T) {
	status, ok := Chain{}.Status(context.Background(), t.TempDir())
	if ok || status != nil {
		t.Error("empty chain must yield absence")
	}
}

type stubProvider struct {
	status *RepoStatus
	ok     bool
}

func (s stubProvider) Status(ctx context.Context, root string) (*RepoStatus, bool) {
	return s.status, s.ok
}

func TestChainFirstResultWins(t *testing.T) {
	want := &RepoStatus{RemoteBranch: "origin/main", CommitsBehind: 2, HasRemoteUpdates: true}
	chain := Chain{
		stubProvider{},
		stubProvider{status: want, ok: true},
		stubProvider{status: &RepoStatus{RemoteBranch: "other"}, ok: true},
	}
	got, ok := chain.Status(context.Background(), ".")
	if !ok || got.RemoteBranch != "origin/main" {
		t.Errorf("chain returned %+v, want %+v", got, want)
	}
}

func TestGitHubRemotePattern(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets", "acme", "widgets"},
		{"git@github.com:acme/widgets.git", "acme", "widgets"},
		{"ssh://git@github.com/acme/my-repo", "acme", "my-repo"},
	}
	for _, c := range cases {
		m := githubRemote.FindStringSubmatch(c.url)
		if m == nil {
			t.Errorf("no match for %q", c.url)
			continue
		}
		if m[1] != c.owner || m[2] != c.repo {
			t.Errorf("%q parsed as %s/%s, want %s/%s", c.url, m[1], m[2], c.owner, c.repo)
		}
	}
	if githubRemote.MatchString("https://gitlab.com/acme/widgets.git") {
		t.Error("non-GitHub remote must not match")
	}
}
