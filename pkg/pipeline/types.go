//go:generate mockgen -destination=./mocks/pipeline.go . Resolver,WorkspaceManager

package pipeline

import (
	"context"

	"github.com/cperrin88/extasset/pkg/cache"
	"github.com/cperrin88/extasset/pkg/fileset"
)

// Resolver is the subset of the cache store used by the driver.
type Resolver interface {
	Resolve(ctx context.Context, files *fileset.Set, id, url string) (cache.Result, error)
	Stats() cache.Stats
}

// WorkspaceManager prepares and removes the download workspace.
type WorkspaceManager interface {
	Prepare() error
	Cleanup() error
}

// State is a driver lifecycle state.
type State string

const (
	StateInit    State = "init"
	StatePrepare State = "prepare"
	StateScan    State = "scan"
	StateResolve State = "resolve"
	StateRewrite State = "rewrite"
	StateCleanup State = "cleanup"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // prepare|scan|resolve|rewrite|cleanup|done|error
	ID    string // marker text, when the event is about one marker
	Msg   string
}

// Hooks carries callbacks for progress events. OnEvent is called from
// several goroutines while markers resolve.
type Hooks struct {
	OnEvent func(Event)
}

// Options control how a driver built by NewDriver resolves assets.
type Options struct {
	TempDir     string
	Destination string
	ClearTemp   bool
	Naming      cache.Naming
	Sources     []string
}

// Report summarizes a successful run.
type Report struct {
	RunID     string
	Markers   int
	Hits      int64
	Misses    int64
	Rewritten int
	Results   []cache.Result
}
