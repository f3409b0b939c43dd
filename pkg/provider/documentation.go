package provider

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Documentation kinds. Anything the wire carries that is not recognized
// decodes through the plain path.
const (
	DocPlain    = "plain"
	DocMarkdown = "markdown"
)

// Documentation is the tagged plain-or-markdown value attached to a
// candidate. The wire may carry either a bare string or a tagged object;
// both decode into this one shape so formatting downstream is a closed
// switch on Kind.
type Documentation struct {
	Kind  string `msgpack:"kind" json:"kind"`
	Value string `msgpack:"value" json:"value"`
}

// Markdown reports whether the value should render as rich text.
func (d *Documentation) Markdown() bool {
	return d != nil && d.Kind == DocMarkdown
}

func (d *Documentation) fill(v any) {
	switch t := v.(type) {
	case string:
		d.Kind = DocPlain
		d.Value = t
	case map[string]any:
		kind, _ := t["kind"].(string)
		value, _ := t["value"].(string)
		if kind != DocMarkdown {
			kind = DocPlain
		}
		d.Kind = kind
		d.Value = value
	default:
		d.Kind = DocPlain
		d.Value = ""
	}
}

// DecodeMsgpack accepts both the bare-string and the tagged-object wire
// forms.
func (d *Documentation) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	d.fill(v)
	return nil
}

// UnmarshalJSON accepts both the bare-string and the tagged-object wire
// forms.
func (d *Documentation) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	d.fill(v)
	return nil
}
