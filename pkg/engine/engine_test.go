package engine

import (
	"context"
	"testing"

	"github.com/snipserve/snipserve/pkg/config"
	"github.com/snipserve/snipserve/pkg/provider"
)

// stubProvider returns a canned response and records what it was asked.
type stubProvider struct {
	resp    *provider.Response
	err     error
	calls   int
	lastReq provider.Request
	onCall  func()
}

func (s *stubProvider) Complete(_ context.Context, req provider.Request) (*provider.Response, error) {
	s.calls++
	s.lastReq = req
	if s.onCall != nil {
		s.onCall()
	}
	return s.resp, s.err
}

func defaultSettings() config.Settings {
	return config.DefaultConfig().Compile()
}

func bareCandidates(names ...string) []provider.Candidate {
	out := make([]provider.Candidate, len(names))
	for i, n := range names {
		out[i] = provider.Candidate{NewPrefix: n}
	}
	return out
}

func TestSuggestCollapsesBareCandidatesAfterDot(t *testing.T) {
	stub := &stubProvider{resp: &provider.Response{
		OldPrefix: "",
		Results:   bareCandidates("Foo", "Bar", "Baz"),
	}}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "obj.", 4)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if !items[0].Preselect {
		t.Error("sole item should be preselected")
	}
	if items[0].Label != "Foo" {
		t.Errorf("collapse kept %q, want top candidate", items[0].Label)
	}
}

func TestSuggestKeepsDecoratedCandidates(t *testing.T) {
	results := bareCandidates("Foo", "Bar")
	results[1].Documentation = &provider.Documentation{Kind: provider.DocPlain, Value: "docs"}
	stub := &stubProvider{resp: &provider.Response{Results: results}}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "obj.", 4)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if !items[0].Preselect || items[1].Preselect {
		t.Error("exactly the first item should be preselected")
	}
}

func TestSuggestAggregatesUserMessages(t *testing.T) {
	stub := &stubProvider{resp: &provider.Response{
		Results:      bareCandidates("alpha", "beta"),
		UserMessages: []string{"a", "b"},
	}}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "al", 2)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.Detail != "a\nb" {
			t.Errorf("Detail = %q, want %q", item.Detail, "a\nb")
		}
	}
}

func TestSuggestEmptyResponse(t *testing.T) {
	stub := &stubProvider{resp: &provider.Response{}}
	eng := New(stub, defaultSettings())

	if items := eng.Suggest(context.Background(), "a.go", "text", 4); len(items) != 0 {
		t.Errorf("got %d items for empty response, want 0", len(items))
	}
}

func TestSuggestSuppressedSkipsServiceCall(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Suppress.LineRegexes = []string{`^\s*//`}
	stub := &stubProvider{resp: &provider.Response{Results: bareCandidates("x")}}
	eng := New(stub, cfg.Compile())

	items := eng.Suggest(context.Background(), "a.go", "// comment", 6)
	if len(items) != 0 {
		t.Errorf("got %d items under suppression, want 0", len(items))
	}
	if stub.calls != 0 {
		t.Errorf("service was called %d times despite suppression", stub.calls)
	}
}

func TestSuggestProviderErrorYieldsNothing(t *testing.T) {
	stub := &stubProvider{err: context.DeadlineExceeded}
	eng := New(stub, defaultSettings())

	if items := eng.Suggest(context.Background(), "a.go", "text", 4); items != nil {
		t.Errorf("got %v on provider error, want nil", items)
	}
}

func TestSuggestCancelledAfterServiceCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &stubProvider{
		resp:   &provider.Response{Results: bareCandidates("late")},
		onCall: cancel,
	}
	eng := New(stub, defaultSettings())

	if items := eng.Suggest(ctx, "a.go", "la", 2); len(items) != 0 {
		t.Errorf("got %d items for a cancelled request, want 0", len(items))
	}
}

func TestSuggestTrimsToMaxResults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Capabilities.TwoSuggestions = true
	// Decorate one candidate so the member-access collapse stays out of
	// the way.
	results := bareCandidates("a", "b", "c", "d")
	results[0].Kind = "function"
	stub := &stubProvider{resp: &provider.Response{Results: results}}
	eng := New(stub, cfg.Compile())

	items := eng.Suggest(context.Background(), "a.go", "x.", 2)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (two-suggestions capability)", len(items))
	}
	if stub.lastReq.MaxResults != 2 {
		t.Errorf("requested max %d, want 2", stub.lastReq.MaxResults)
	}
}

func TestSuggestWindowFields(t *testing.T) {
	stub := &stubProvider{resp: &provider.Response{}}
	eng := New(stub, defaultSettings())

	eng.Suggest(context.Background(), "dir/a.go", "before|after", 6)
	req := stub.lastReq
	if req.Before != "before" || req.After != "|after" {
		t.Errorf("window = (%q, %q), want (%q, %q)", req.Before, req.After, "before", "|after")
	}
	if !req.ReachesBeg || !req.ReachesEnd {
		t.Error("small document should reach both edges")
	}
	if req.FilePath != "dir/a.go" {
		t.Errorf("FilePath = %q", req.FilePath)
	}
}

func TestSuggestRecoversFromPanic(t *testing.T) {
	stub := &stubProvider{
		resp:   &provider.Response{Results: bareCandidates("x")},
		onCall: func() { panic("provider blew up") },
	}
	eng := New(stub, defaultSettings())

	if items := eng.Suggest(context.Background(), "a.go", "x", 1); items != nil {
		t.Errorf("got %v after panic, want nil", items)
	}
}
