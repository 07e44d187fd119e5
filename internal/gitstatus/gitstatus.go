// Package gitstatus provides the best-effort repository ahead/behind
// check behind a narrow capability interface. Core control flow branches
// only on presence or absence of a result; no failure here ever surfaces
// as an error.
package gitstatus

import "context"

// RepoStatus is the ephemeral remote-tracking snapshot; never persisted.
type RepoStatus struct {
	HasRemoteUpdates bool   `json:"hasRemoteUpdates"`
	RemoteBranch     string `json:"remoteBranch"`
	CommitsBehind    int    `json:"commitsBehind"`
	CommitsAhead     int    `json:"commitsAhead"`
}

// Provider computes the repository status for a project root. The second
// return value is false whenever no remote information is available (not
// a repository, no upstream, tool missing, network failure).
type Provider interface {
	Status(ctx context.Context, root string) (*RepoStatus, bool)
}

// Chain tries providers in order and returns the first result.
type Chain []Provider

func (c Chain) Status(ctx context.Context, root string) (*RepoStatus, bool) {
	for _, p := range c {
		if status, ok := p.Status(ctx, root); ok {
			return status, true
		}
	}
	return nil, false
}
