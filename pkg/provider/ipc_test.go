package provider

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

// fakeService answers requests on the far end of the pipes like a
// generation service process would.
func fakeService(t *testing.T, in io.Reader, out io.Writer, build func(Request) wireResponse) {
	t.Helper()
	dec := msgpack.NewDecoder(in)
	enc := msgpack.NewEncoder(out)
	go func() {
		for {
			var req Request
			if err := dec.Decode(&req); err != nil {
				return
			}
			if err := enc.Encode(build(req)); err != nil {
				return
			}
		}
	}()
}

func TestIPCProviderRoundTrip(t *testing.T) {
	toService, fromEngine := io.Pipe()
	toEngine, fromService := io.Pipe()
	defer fromEngine.Close()
	defer fromService.Close()

	fakeService(t, toService, fromService, func(req Request) wireResponse {
		return wireResponse{
			ID: req.ID,
			Response: Response{
				OldPrefix: "pr",
				Results:   []Candidate{{NewPrefix: "print"}, {NewPrefix: "printf"}},
			},
		}
	})

	p := NewPipeProvider(toEngine, fromEngine)
	resp, err := p.Complete(context.Background(), Request{
		FilePath:   "a.go",
		Before:     "pr",
		MaxResults: 5,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.OldPrefix != "pr" || len(resp.Results) != 2 {
		t.Errorf("response = %+v", resp)
	}

	// A second request gets a fresh ID and its own response.
	resp, err = p.Complete(context.Background(), Request{Before: "pri", MaxResults: 1})
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("second response = %+v", resp)
	}
}

func TestIPCProviderServiceError(t *testing.T) {
	toService, fromEngine := io.Pipe()
	toEngine, fromService := io.Pipe()
	defer fromEngine.Close()
	defer fromService.Close()

	fakeService(t, toService, fromService, func(req Request) wireResponse {
		return wireResponse{ID: req.ID, Error: "model not loaded"}
	})

	p := NewPipeProvider(toEngine, fromEngine)
	if _, err := p.Complete(context.Background(), Request{Before: "x"}); err == nil {
		t.Error("expected error from service-side failure")
	}
}

func TestIPCProviderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeProvider(&bytes.Buffer{}, &bytes.Buffer{})
	if _, err := p.Complete(ctx, Request{Before: "x"}); err == nil {
		t.Error("expected context error before any IO")
	}
}
