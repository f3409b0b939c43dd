package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/snipserve/snipserve/internal/logger"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// wireResponse is the on-wire envelope: a Response plus the echoed request
// ID and an optional service-side error.
type wireResponse struct {
	ID       string `msgpack:"id"`
	Response `msgpack:",inline"`
	Error    string `msgpack:"e,omitempty"`
}

// IPCProvider drives an external generation service process over msgpack
// stdin/stdout. Requests are serialized; the service answers one at a time
// in order.
type IPCProvider struct {
	mu     sync.Mutex
	enc    *msgpack.Encoder
	dec    *msgpack.Decoder
	closer io.Closer
	cmd    *exec.Cmd
	seq    uint64
	logger *log.Logger
}

// NewIPCProvider launches the given service command and attaches to its
// pipes. The service's stderr passes through for debugging.
func NewIPCProvider(command string, args ...string) (*IPCProvider, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("provider stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("provider stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting provider %q: %w", command, err)
	}

	p := NewPipeProvider(stdout, stdin)
	p.closer = stdin
	p.cmd = cmd
	p.logger.Debugf("Started generation service: %s (pid %d)", command, cmd.Process.Pid)
	return p, nil
}

// NewPipeProvider attaches to an already-connected transport. Used by
// tests and by callers that manage the service process themselves.
func NewPipeProvider(r io.Reader, w io.Writer) *IPCProvider {
	return &IPCProvider{
		enc:    msgpack.NewEncoder(w),
		dec:    msgpack.NewDecoder(r),
		logger: logger.Default("provider"),
	}
}

// Complete sends one request and blocks for its response. The context is
// only consulted up front; once a request is on the wire the read completes
// or fails with the transport.
func (p *IPCProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.seq++
	req.ID = fmt.Sprintf("req_%04d", p.seq)

	if err := p.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("encoding request %s: %w", req.ID, err)
	}

	var resp wireResponse
	if err := p.dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", req.ID, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("service error for %s: %s", req.ID, resp.Error)
	}
	if resp.ID != req.ID {
		p.logger.Warnf("Response ID %q does not match request %q", resp.ID, req.ID)
	}
	return &resp.Response, nil
}

// Close shuts the transport down and reaps the service process if this
// provider started one.
func (p *IPCProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closer != nil {
		p.closer.Close()
	}
	if p.cmd != nil {
		return p.cmd.Wait()
	}
	return nil
}
