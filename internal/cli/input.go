// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"github.com/snipserve/snipserve/pkg/engine"

	"github.com/charmbracelet/log"
)

// cursorMarker marks the cursor position inside a typed line.
const cursorMarker = "|"

// InputHandler processes user input from stdin and runs the full
// synthesis pipeline against it. Each line is treated as a one-line
// document; a '|' marks where the cursor sits.
type InputHandler struct {
	engine       *engine.Engine
	filePath     string
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(eng *engine.Engine, filePath string) *InputHandler {
	return &InputHandler{
		engine:   eng,
		filePath: filePath,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("snipserve CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Printf("type a line with %q as the cursor and press Enter (Ctrl+C to exit):", cursorMarker)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs one line through the pipeline and prints the
// synthesized items. Without a cursor marker, the cursor is taken to sit
// at the end of the line.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	cursor := strings.Index(line, cursorMarker)
	text := line
	if cursor >= 0 {
		text = line[:cursor] + line[cursor+len(cursorMarker):]
	} else {
		cursor = len(line)
	}

	start := time.Now()
	items := h.engine.Suggest(context.Background(), h.filePath, text, cursor)
	elapsed := time.Since(start)

	if len(items) == 0 {
		log.Infof("No suggestions (%v)", elapsed)
		return
	}
	log.Infof("%d suggestion(s) in %v:", len(items), elapsed)
	renderItems(items)
}
