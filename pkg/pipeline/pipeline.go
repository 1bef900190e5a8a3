// Package pipeline runs the asset materialization pass over a file set:
// prepare the workspace, scan for markers, resolve every marker through the
// cache, rewrite sources and clean up.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cperrin88/extasset/pkg/cache"
	"github.com/cperrin88/extasset/pkg/download"
	"github.com/cperrin88/extasset/pkg/errors"
	"github.com/cperrin88/extasset/pkg/fileset"
	"github.com/cperrin88/extasset/pkg/marker"
	"github.com/cperrin88/extasset/pkg/rewrite"
)

// Driver ties the workspace, the cache store and the rewriter together.
type Driver struct {
	Workspace WorkspaceManager
	Resolver  Resolver
	Matcher   fileset.Matcher
	Hooks     Hooks // Hooks for progress and event notifications

	mu    sync.Mutex
	state State
}

// NewDriver builds a driver backed by a cache.Workspace and a cache.Store
// downloading with fetcher.
func NewDriver(fetcher download.Fetcher, opts Options) *Driver {
	m := fileset.DefaultMatcher()
	if len(opts.Sources) > 0 {
		m = fileset.Matcher{Extensions: opts.Sources}
	}
	return &Driver{
		Workspace: cache.NewWorkspace(opts.TempDir, opts.ClearTemp),
		Resolver: cache.NewStore(fetcher, cache.Options{
			TempDir:     opts.TempDir,
			Destination: opts.Destination,
			Naming:      opts.Naming,
		}),
		Matcher: m,
	}
}

// State returns the state the driver last entered.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == "" {
		return StateInit
	}
	return d.state
}

func (d *Driver) enter(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func (d *Driver) fail(err error) (*Report, error) {
	d.enter(StateFailed)
	emit(d.Hooks, Event{Phase: "error", Msg: err.Error()})
	return nil, err
}

// Run materializes every marker found in set and rewrites the sources in
// place. Any failure aborts the run before sources are touched and the
// workspace is left as is.
func (d *Driver) Run(ctx context.Context, set *fileset.Set) (*Report, error) {
	if d.Workspace == nil || d.Resolver == nil {
		return nil, fmt.Errorf("pipeline driver is not configured")
	}
	report := &Report{RunID: uuid.NewString()}
	before := d.Resolver.Stats()

	d.enter(StatePrepare)
	emit(d.Hooks, Event{Phase: "prepare", Msg: report.RunID})
	if err := d.Workspace.Prepare(); err != nil {
		return d.fail(err)
	}

	d.enter(StateScan)
	markers := marker.Scan(set, d.Matcher)
	report.Markers = len(markers)
	emit(d.Hooks, Event{Phase: "scan", Msg: fmt.Sprintf("%d markers", len(markers))})

	d.enter(StateResolve)
	results, err := d.resolveAll(ctx, set, markers)
	if err != nil {
		return d.fail(err)
	}
	report.Results = results

	d.enter(StateRewrite)
	report.Rewritten = rewrite.Apply(set, d.Matcher, results)
	emit(d.Hooks, Event{Phase: "rewrite", Msg: fmt.Sprintf("%d files", report.Rewritten)})

	d.enter(StateCleanup)
	emit(d.Hooks, Event{Phase: "cleanup"})
	if err := d.Workspace.Cleanup(); err != nil {
		return d.fail(err)
	}

	after := d.Resolver.Stats()
	report.Hits = after.Hits - before.Hits
	report.Misses = after.Misses - before.Misses

	d.enter(StateDone)
	emit(d.Hooks, Event{Phase: "done", Msg: report.RunID})
	return report, nil
}

// resolveAll resolves markers concurrently. The first failure cancels the
// remaining resolutions; results keep the order of markers.
func (d *Driver) resolveAll(ctx context.Context, set *fileset.Set, markers []marker.Marker) ([]cache.Result, error) {
	results := make([]cache.Result, len(markers))
	g, gctx := errgroup.WithContext(ctx)
	for i, mk := range markers {
		g.Go(func() error {
			emit(d.Hooks, Event{Phase: "resolve", ID: mk.ID, Msg: mk.URL})
			res, err := d.Resolver.Resolve(gctx, set, mk.ID, mk.URL)
			if err != nil {
				return errors.Wrapf(err, "resolve %s", mk.URL)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
