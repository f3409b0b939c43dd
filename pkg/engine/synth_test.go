package engine

import (
	"context"
	"sort"
	"testing"

	"github.com/snipserve/snipserve/pkg/config"
	"github.com/snipserve/snipserve/pkg/provider"
)

func TestSortKeysReproduceResponseOrder(t *testing.T) {
	// Labels chosen to sort backwards alphabetically; the sort keys must
	// still reproduce response order under plain lexicographic sort.
	stub := &stubProvider{resp: &provider.Response{
		Results: bareCandidates("zebra", "yak", "aardvark"),
	}}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "z", 1)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SortKey < sorted[j].SortKey })
	for i := range items {
		if sorted[i].Label != items[i].Label {
			t.Fatalf("lexicographic order diverges from response order at %d: %q vs %q",
				i, sorted[i].Label, items[i].Label)
		}
	}
}

func TestSortKeyClampsPastIndexSpace(t *testing.T) {
	eng := New(&stubProvider{}, defaultSettings())
	if got := eng.sortKey(250); got != eng.sortKey(maxSortIndex) {
		t.Errorf("index past the key space should clamp, got %q", got)
	}
	if eng.sortKey(3) >= eng.sortKey(10) {
		t.Error("two-digit encoding must keep single digits below double digits")
	}
}

func TestSynthesizeReplacementRange(t *testing.T) {
	resp := &provider.Response{
		OldPrefix: "Pr",
		Results: []provider.Candidate{
			{NewPrefix: "Println", OldSuffix: ""},
			{NewPrefix: "Printf", OldSuffix: "intf"},
		},
	}
	stub := &stubProvider{resp: resp}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "Pr", 2)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// Left bound shared across candidates, right bound per candidate.
	for i, wantEnd := range []int{0, 4} {
		if items[i].Range.Begin != -2 {
			t.Errorf("item %d Begin = %d, want -2", i, items[i].Range.Begin)
		}
		if items[i].Range.End != wantEnd {
			t.Errorf("item %d End = %d, want %d", i, items[i].Range.End, wantEnd)
		}
	}
}

func TestSynthesizeDetailPreference(t *testing.T) {
	testCases := []struct {
		name            string
		candidateDetail string
		userMessages    []string
		want            string
	}{
		{"fallback aggregate yields candidate detail", "fn(x int) error", nil, "fn(x int) error"},
		{"quota advisory yields candidate detail", "fn(x int) error", []string{"daily quota reached"}, "fn(x int) error"},
		{"other advisory wins over candidate detail", "fn(x int) error", []string{"service updating"}, "service updating"},
		{"no candidate detail takes aggregate", "", []string{"service updating"}, "service updating"},
		{"no candidate detail takes fallback", "", nil, detailFallback},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubProvider{resp: &provider.Response{
				Results:      []provider.Candidate{{NewPrefix: "fn", Detail: tc.candidateDetail}},
				UserMessages: tc.userMessages,
			}}
			eng := New(stub, defaultSettings())

			items := eng.Suggest(context.Background(), "a.go", "f", 1)
			if len(items) != 1 {
				t.Fatalf("got %d items, want 1", len(items))
			}
			if items[0].Detail != tc.want {
				t.Errorf("Detail = %q, want %q", items[0].Detail, tc.want)
			}
		})
	}
}

func TestFormatDocumentation(t *testing.T) {
	testCases := []struct {
		name         string
		doc          *provider.Documentation
		wantNil      bool
		wantMarkdown bool
		wantValue    string
	}{
		{"nil passes through", nil, true, false, ""},
		{"markdown kind renders rich", &provider.Documentation{Kind: provider.DocMarkdown, Value: "**b**"}, false, true, "**b**"},
		{"plain kind renders plain", &provider.Documentation{Kind: provider.DocPlain, Value: "text"}, false, false, "text"},
		{"unknown kind falls back to plain", &provider.Documentation{Kind: "html", Value: "<b>"}, false, false, "<b>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatDocumentation(tc.doc)
			if tc.wantNil {
				if got != nil {
					t.Fatalf("got %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("got nil Doc")
			}
			if got.Markdown != tc.wantMarkdown || got.Value != tc.wantValue {
				t.Errorf("Doc = %+v, want markdown=%v value=%q", got, tc.wantMarkdown, tc.wantValue)
			}
		})
	}
}

func TestSynthesizeOnboardingMarker(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Capabilities.OnboardingMarker = true
	stub := &stubProvider{resp: &provider.Response{Results: bareCandidates("Foo")}}
	eng := New(stub, cfg.Compile())

	items := eng.Suggest(context.Background(), "a.go", "F", 1)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Label != onboardingMarker+"Foo" {
		t.Errorf("Label = %q, want marker prefix", items[0].Label)
	}
}

func TestSynthesizeAutoImportCommand(t *testing.T) {
	results := bareCandidates("Foo", "Bar")
	results[0].Kind = "function"
	stub := &stubProvider{resp: &provider.Response{Results: results}}

	cfg := config.DefaultConfig()
	cfg.Capabilities.AutoImport = true
	eng := New(stub, cfg.Compile())

	items := eng.Suggest(context.Background(), "a.go", "F", 1)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	cmd := items[1].Command
	if cmd == nil || cmd.Name != AutoImportCommand {
		t.Fatalf("Command = %+v, want %q", cmd, AutoImportCommand)
	}
	if cmd.Args.Acceptance != "Bar" {
		t.Errorf("Acceptance = %q, want the item's own text", cmd.Args.Acceptance)
	}
	if len(cmd.Args.Candidates) != 2 {
		t.Errorf("payload carries %d candidates, want the full response list", len(cmd.Args.Candidates))
	}
	if cmd.Args.CursorOffset != 1 {
		t.Errorf("CursorOffset = %d, want 1", cmd.Args.CursorOffset)
	}

	cfg.Capabilities.AutoImport = false
	eng = New(stub, cfg.Compile())
	items = eng.Suggest(context.Background(), "a.go", "F", 1)
	if len(items) == 0 || items[0].Command != nil {
		t.Error("command attached with auto-import disabled")
	}
}

func TestSynthesizeSnippetBody(t *testing.T) {
	stub := &stubProvider{resp: &provider.Response{
		Results: []provider.Candidate{{NewPrefix: "append(", NewSuffix: ")"}},
	}}
	eng := New(stub, defaultSettings())

	items := eng.Suggest(context.Background(), "a.go", "app", 3)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Snippet != "append($0)" {
		t.Errorf("Snippet = %q, want %q", items[0].Snippet, "append($0)")
	}
}
