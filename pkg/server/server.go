package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/snipserve/snipserve/pkg/config"
	"github.com/snipserve/snipserve/pkg/engine"
	"github.com/snipserve/snipserve/pkg/provider"

	"github.com/charmbracelet/log"
)

// Server handles the IPC for suggestion synthesis
type Server struct {
	mu         sync.RWMutex
	engine     *engine.Engine
	provider   provider.Provider
	configPath string
	reader     *bufio.Reader
	writer     io.Writer
}

// NewServer creates a new synthesis server using stdin/stdout for IPC
func NewServer(p provider.Provider, settings config.Settings, configPath string) *Server {
	return &Server{
		engine:     engine.New(p, settings),
		provider:   p,
		configPath: configPath,
		reader:     bufio.NewReader(os.Stdin),
		writer:     os.Stdout,
	}
}

// NewServerWithIO is NewServer with explicit endpoints, for tests and
// embedding.
func NewServerWithIO(p provider.Provider, settings config.Settings, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:   engine.New(p, settings),
		provider: p,
		reader:   bufio.NewReader(r),
		writer:   w,
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(map[string]string{"status": "ready"})

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Reading from stdin: %v", err)
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.handleRequest(line)
	}
}

// handleRequest processes an incoming request string
func (s *Server) handleRequest(requestStr string) {
	var request Request
	if err := json.Unmarshal([]byte(requestStr), &request); err != nil {
		s.sendError("", "Invalid JSON request", 400)
		log.Errorf("Unmarshaling request: %v", err)
		return
	}

	switch request.Command {
	case "complete":
		s.handleComplete(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	case "config":
		s.handleConfig(request)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

// handleComplete validates the request, runs the synthesis pipeline and
// sends the item list. Pipeline failures never reach here; the engine
// answers them with an empty list.
func (s *Server) handleComplete(request Request) {
	if request.Path == "" {
		s.sendError(request.ID, "Missing 'path' parameter", 400)
		log.Debug("Path is empty in request")
		return
	}
	if request.Offset < 0 || request.Offset > len(request.Text) {
		s.sendError(request.ID, "Offset outside document bounds", 400)
		log.Debugf("Offset %d out of bounds for %d-byte text", request.Offset, len(request.Text))
		return
	}

	start := time.Now()
	s.mu.RLock()
	eng := s.engine
	s.mu.RUnlock()
	items := eng.Suggest(context.Background(), request.Path, request.Text, request.Offset)
	elapsed := time.Since(start)

	if items == nil {
		items = []engine.Item{}
	}
	s.sendResponse(CompleteResponse{
		ID:        request.ID,
		Items:     items,
		Count:     len(items),
		TimeTaken: elapsed.Milliseconds(),
	})
}

// handleConfig reports the active settings
func (s *Server) handleConfig(request Request) {
	s.mu.RLock()
	settings := s.engine.Settings()
	s.mu.RUnlock()

	s.sendResponse(StatusResponse{
		ID:         request.ID,
		Status:     "ok",
		MaxResults: settings.MaxResults,
		ConfigPath: config.GetActiveConfigPath(s.configPath),
	})
}

// sendResponse marshals the given response into JSON and writes it to the
// client, followed by a newline.
func (s *Server) sendResponse(response interface{}) {
	data, err := json.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		s.sendError("", "Internal server error", 500)
		return
	}
	fmt.Fprintln(s.writer, string(data))
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	errResponse := ErrorResponse{
		ID:     id,
		Error:  message,
		Status: code,
	}
	s.sendResponse(errResponse)
}

// swapSettings rebuilds the engine with new settings. Requests already in
// flight finish on the engine they started with.
func (s *Server) swapSettings(settings config.Settings) {
	s.mu.Lock()
	s.engine = engine.New(s.provider, settings)
	s.mu.Unlock()
}
