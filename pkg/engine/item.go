package engine

import "github.com/snipserve/snipserve/pkg/provider"

// AutoImportCommand names the follow-up command the editor invokes on
// acceptance when auto-import is enabled. The import resolution itself
// lives with the editor-side collaborator.
const AutoImportCommand = "snipserve.autoImport"

// Range is a replacement span expressed as byte offsets relative to the
// cursor: Begin is zero or negative (the matched prefix being replaced),
// End is zero or positive (existing text consumed going forward).
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Doc is formatted documentation attached to an item.
type Doc struct {
	Markdown bool   `json:"markdown,omitempty"`
	Value    string `json:"value"`
}

// CommandArgs is the payload of the auto-import follow-up command: the
// accepted text, the full candidate list of the response it came from,
// and where the insertion happened.
type CommandArgs struct {
	Acceptance   string               `json:"acceptance"`
	Candidates   []provider.Candidate `json:"candidates"`
	CursorOffset int                  `json:"cursor_offset"`
}

// Command is an editor command to run when an item is accepted.
type Command struct {
	Name string      `json:"name"`
	Args CommandArgs `json:"args"`
}

// Item is one synthesized, insertable suggestion ready for the editor's
// suggestion list.
type Item struct {
	Label         string   `json:"label"`
	SortKey       string   `json:"sort_key"`
	Snippet       string   `json:"snippet"`
	Range         Range    `json:"range"`
	Preselect     bool     `json:"preselect,omitempty"`
	Detail        string   `json:"detail,omitempty"`
	Documentation *Doc     `json:"documentation,omitempty"`
	Command       *Command `json:"command,omitempty"`
}
