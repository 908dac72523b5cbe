package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/tasktracker/models"
)

// separatorWidth is the width of the "=" rules around the progress block.
const separatorWidth = 60

// CompletionBanner is printed instead of the pending list once nothing is pending.
const CompletionBanner = "✅ All tasks completed!"

// RenderStatus writes the status report:
//
//	<blank line>
//	============================================================
//	Progress: 1/4 (25.0%)
//	Remaining: 3
//	============================================================
//	<blank line>
//	Pending tasks:
//	  [P1] T2: Write docs
//
// With no pending task the "Pending tasks" block is replaced by CompletionBanner.
func RenderStatus(w io.Writer, progress models.Progress, pending []models.Task) error {
	p := newPainter(w)
	rule := p.render(StyleSubtle, strings.Repeat("=", separatorWidth))

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("%s %d/%d (%s%%)\n",
		p.render(StyleTitle, "Progress:"), progress.Completed, progress.Total, FormatPercentage(progress)))
	sb.WriteString(fmt.Sprintf("%s %d\n", p.render(StyleTitle, "Remaining:"), progress.Remaining))
	sb.WriteString(rule + "\n")

	if len(pending) > 0 {
		sb.WriteString("\n" + p.render(StyleSectionTitle, "Pending tasks:") + "\n")
		for _, task := range pending {
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n",
				p.render(StylePriority, "["+task.Priority+"]"),
				p.render(StyleTaskID, task.ID),
				task.Description))
		}
	} else {
		sb.WriteString("\n" + p.render(StyleSuccess, CompletionBanner) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatPercentage renders the progress percentage: "0" for an empty list,
// otherwise the rounded value with at least one decimal ("25.0", "33.33").
func FormatPercentage(progress models.Progress) string {
	if progress.Total == 0 {
		return "0"
	}
	s := strconv.FormatFloat(progress.Percentage, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
