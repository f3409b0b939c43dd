/*
Package server implements the editor-facing IPC for suggestion synthesis.

The server reads newline-delimited JSON requests from stdin and writes one
JSON response per line to stdout, which keeps editor plugin integration a
few lines of code in any language.

A completion request carries the document text, its path and the cursor's
byte offset:

	{"id": "c1", "command": "complete", "path": "a.go", "text": "fmt.Pr", "offset": 6}

The response lists the synthesized items in order, with timing info:

	{"id": "c1", "items": [{"label": "Println", "sort_key": " 00", ...}], "count": 1, "t": 12}

An empty items array is the normal answer whenever completion is
suppressed, the service had nothing, or anything failed internally; the
server never surfaces pipeline faults to the editor.

Other commands: "health" answers a status probe, "config" reports the
active settings. Malformed requests get an ErrorResponse with an HTTP-ish
status code.
*/
package server

import "github.com/snipserve/snipserve/pkg/engine"

// Request represents an incoming request from the editor client
type Request struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	Path    string `json:"path,omitempty"`
	Text    string `json:"text,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// CompleteResponse is the answer to a "complete" request
type CompleteResponse struct {
	ID        string        `json:"id"`
	Items     []engine.Item `json:"items"`
	Count     int           `json:"count"`
	TimeTaken int64         `json:"t"`
}

// StatusResponse answers "health" and "config" requests
type StatusResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	MaxResults int    `json:"max_results,omitempty"`
	ConfigPath string `json:"config_path,omitempty"`
}

// ErrorResponse represents a request-level error
type ErrorResponse struct {
	ID     string `json:"id,omitempty"`
	Error  string `json:"error"`
	Status int    `json:"status"`
}
