package engine

import (
	"fmt"
	"strings"

	"github.com/snipserve/snipserve/pkg/provider"
	"github.com/snipserve/snipserve/pkg/snippet"
)

const (
	// onboardingMarker decorates labels while the onboarding capability
	// is on, so new users can spot which entries came from snipserve.
	onboardingMarker = "★ "

	// detailFallback is the aggregated detail when the service sent no
	// advisory messages.
	detailFallback = "snipserve"

	// quotaNotice marks service advisories that a candidate's own detail
	// may override.
	quotaNotice = "quota"

	// sortKeyWidth is the ordinal width of the sort key. Two digits cover
	// every index the limiter can request; sortKey clamps past that.
	sortKeyWidth = 2
	maxSortIndex = 99
)

// sortKey encodes a response index so the editor's lexicographic sort
// reproduces response order regardless of label text. The leading space
// floats the whole block above ordinary word keys.
func (e *Engine) sortKey(index int) string {
	if index > maxSortIndex {
		e.logger.Errorf("Suggestion index %d exceeds %d-digit sort key space, clamping", index, sortKeyWidth)
		index = maxSortIndex
	}
	return fmt.Sprintf(" %0*d", sortKeyWidth, index)
}

// aggregateDetail joins the envelope's advisory messages in order, or
// falls back to the product name when there are none.
func aggregateDetail(messages []string) string {
	if len(messages) == 0 {
		return detailFallback
	}
	return strings.Join(messages, "\n")
}

// formatDocumentation maps the wire documentation union onto the item
// shape. Unknown kinds were already normalized to plain at decode time;
// the default arm keeps that guarantee even for hand-built values.
func formatDocumentation(doc *provider.Documentation) *Doc {
	if doc == nil {
		return nil
	}
	switch doc.Kind {
	case provider.DocMarkdown:
		return &Doc{Markdown: true, Value: doc.Value}
	default:
		return &Doc{Value: doc.Value}
	}
}

// synthesize builds the insertable item for resp.Results[index].
//
// The replacement range is shared on the left (every candidate replaces
// the same old prefix) but each candidate may consume a different amount
// of existing text to the right. Only the top item is preselected. A
// candidate's own detail wins over the aggregated message when that
// message is just the fallback or a quota advisory.
func (e *Engine) synthesize(resp *provider.Response, index, cursor int, detail string) Item {
	c := resp.Results[index]

	label := c.NewPrefix
	if e.settings.Capabilities.OnboardingMarker {
		label = onboardingMarker + label
	}

	itemDetail := detail
	if c.Detail != "" && (detail == detailFallback || strings.Contains(detail, quotaNotice)) {
		itemDetail = c.Detail
	}

	item := Item{
		Label:         label,
		SortKey:       e.sortKey(index),
		Snippet:       snippet.Body(c.NewPrefix, c.NewSuffix),
		Range:         Range{Begin: -len(resp.OldPrefix), End: len(c.OldSuffix)},
		Preselect:     index == 0,
		Detail:        itemDetail,
		Documentation: formatDocumentation(c.Documentation),
	}

	if e.settings.Capabilities.AutoImport {
		item.Command = &Command{
			Name: AutoImportCommand,
			Args: CommandArgs{
				Acceptance:   c.NewPrefix,
				Candidates:   resp.Results,
				CursorOffset: cursor,
			},
		}
	}
	return item
}
