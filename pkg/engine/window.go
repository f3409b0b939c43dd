package engine

import "fmt"

// WindowCharLimit bounds how much document text travels to the generation
// service on each side of the cursor.
const WindowCharLimit = 100000

// Window is a bounded view of the document around the cursor. The flags
// record whether the window reached the document's true edges, so the
// service knows whether more context exists beyond what it was sent.
type Window struct {
	Before       string
	After        string
	ReachesStart bool
	ReachesEnd   bool
}

// windowAround slices text around cursor, clamping at the document edges.
// The start offset is never negative.
func windowAround(text string, cursor int) (Window, error) {
	if cursor < 0 || cursor > len(text) {
		return Window{}, fmt.Errorf("cursor offset %d outside document of %d bytes", cursor, len(text))
	}
	start := cursor - WindowCharLimit
	if start < 0 {
		start = 0
	}
	end := cursor + WindowCharLimit
	if end > len(text) {
		end = len(text)
	}
	return Window{
		Before:       text[start:cursor],
		After:        text[cursor:end],
		ReachesStart: start == 0,
		ReachesEnd:   end == len(text),
	}, nil
}
