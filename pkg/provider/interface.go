/*
Package provider talks to the suggestion generation service and defines the
wire shapes the rest of snipserve consumes.

The generation service is an external process that receives a bounded window
of document text around the cursor and answers with ranked raw candidates.
snipserve never generates or re-ranks candidates itself; it only decides how
many to request, and later how the retained ones become insertable items.

# IPC

Requests and responses travel as msgpack over the service process's
stdin/stdout. Each request carries an ID which the service echoes back:

	{"id": "req_0001", "path": "src/main.go", "before": "fmt.Pr", "after": "", "rb": true, "re": true, "max": 5}

The service replies with the matched prefix and an ordered candidate list:

	{"id": "req_0001", "old_prefix": "Pr", "results": [{"new_prefix": "Println", ...}], "user_message": []}

A response with zero results is a normal outcome, not an error. Transport
or decode failures surface as errors to the caller, which absorbs them at
its own fault boundary.

msgpack keeps request payloads small; document windows can carry up to
100k characters on each side of the cursor.
*/
package provider

import "context"

// Request is one completion request sent to the generation service.
// The rb/re flags tell the service whether more document text exists
// beyond the window it was given.
type Request struct {
	ID         string `msgpack:"id" json:"id"`
	FilePath   string `msgpack:"path" json:"path"`
	Before     string `msgpack:"before" json:"before"`
	After      string `msgpack:"after" json:"after"`
	ReachesBeg bool   `msgpack:"rb" json:"rb"`
	ReachesEnd bool   `msgpack:"re" json:"re"`
	MaxResults int    `msgpack:"max" json:"max"`
}

// Candidate is one raw suggestion from the generation service.
// NewPrefix replaces the matched prefix, OldSuffix is existing text the
// suggestion also consumes going forward, NewSuffix is inserted after the
// snippet placeholder.
type Candidate struct {
	NewPrefix     string         `msgpack:"new_prefix" json:"new_prefix"`
	OldSuffix     string         `msgpack:"old_suffix,omitempty" json:"old_suffix,omitempty"`
	NewSuffix     string         `msgpack:"new_suffix,omitempty" json:"new_suffix,omitempty"`
	Kind          string         `msgpack:"kind,omitempty" json:"kind,omitempty"`
	Documentation *Documentation `msgpack:"documentation,omitempty" json:"documentation,omitempty"`
	Detail        string         `msgpack:"detail,omitempty" json:"detail,omitempty"`
}

// Response is the envelope returned for one completion request.
// OldPrefix is the already-typed text every candidate replaces;
// UserMessages are advisory strings surfaced in the suggestion detail.
type Response struct {
	OldPrefix    string      `msgpack:"old_prefix" json:"old_prefix"`
	Results      []Candidate `msgpack:"results" json:"results"`
	UserMessages []string    `msgpack:"user_message,omitempty" json:"user_message,omitempty"`
}

// Provider produces ranked completion candidates for a request window.
// A nil response or empty Results means "nothing to show" and is not an
// error.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
