/*
Package engine turns ranked raw candidates from a generation service into
concrete, insertable editor suggestions.

The pipeline for one request is: suppression check, window computation,
service call, result limiting, item synthesis. Everything is stack-local
to the invocation; nothing survives past the returned item list. Every
failure along the way is absorbed at the pipeline boundary and produces an
empty list, never a propagated fault — a broken completion must read as
"no suggestions", not as an editor error.
*/
package engine

import (
	"context"
	"strings"

	"github.com/snipserve/snipserve/internal/logger"
	"github.com/snipserve/snipserve/pkg/config"
	"github.com/snipserve/snipserve/pkg/policy"
	"github.com/snipserve/snipserve/pkg/provider"

	"github.com/charmbracelet/log"
)

// Engine synthesizes suggestions for completion requests. It is a pure
// function of its settings and inputs; safe for concurrent use as long as
// the provider is.
type Engine struct {
	provider provider.Provider
	settings config.Settings
	logger   *log.Logger
}

// New builds an engine over the given provider and compiled settings.
func New(p provider.Provider, settings config.Settings) *Engine {
	return &Engine{
		provider: p,
		settings: settings,
		logger:   logger.Default("engine"),
	}
}

// Suggest runs the full pipeline for one cursor position and returns the
// items to show, in order. An empty slice means nothing to show, whatever
// the reason; errors and panics are logged here and go no further.
func (e *Engine) Suggest(ctx context.Context, filePath, text string, cursor int) (items []Item) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("Completion pipeline panic: %v", r)
			items = nil
		}
	}()

	if !policy.Allowed(text, cursor, e.settings.LineRegexes, e.settings.FileRegexes, filePath) {
		e.logger.Debugf("Completion suppressed at %s:%d", filePath, cursor)
		return nil
	}

	win, err := windowAround(text, cursor)
	if err != nil {
		e.logger.Errorf("Window computation: %v", err)
		return nil
	}

	max := policy.MaxResults(policy.Limits{
		OneSuggestion:  e.settings.Capabilities.OneSuggestion,
		TwoSuggestions: e.settings.Capabilities.TwoSuggestions,
		ConfiguredMax:  e.settings.MaxResults,
	})

	resp, err := e.provider.Complete(ctx, provider.Request{
		FilePath:   filePath,
		Before:     win.Before,
		After:      win.After,
		ReachesBeg: win.ReachesStart,
		ReachesEnd: win.ReachesEnd,
		MaxResults: max,
	})
	if err != nil {
		e.logger.Warnf("Generation service: %v", err)
		return nil
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil
	}

	// The editor may have cancelled while the service was thinking;
	// synthesizing for a stale cursor position helps nobody.
	if err := ctx.Err(); err != nil {
		e.logger.Debugf("Request cancelled after service call: %v", err)
		return nil
	}

	keep := len(resp.Results)
	if keep > max {
		keep = max
	}
	preceding := strings.TrimSuffix(win.Before, resp.OldPrefix)
	if policy.CollapseToOne(resp.Results[:keep], preceding) {
		keep = 1
	}

	detail := aggregateDetail(resp.UserMessages)
	items = make([]Item, 0, keep)
	for i := 0; i < keep; i++ {
		items = append(items, e.synthesize(resp, i, cursor, detail))
	}
	return items
}

// Settings exposes the compiled settings the engine runs with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}
