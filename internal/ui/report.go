package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"suitedeploy/internal/domain"
)

// VerifyMarkdown summarizes a verify run as markdown.
func VerifyMarkdown(r domain.VerifyReport) string {
	var sb strings.Builder
	sb.WriteString("# SuiteDeploy verification\n\n")
	if r.Skipped {
		sb.WriteString("Skipped: another SuiteCloud process was running.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "| | Objects |\n|---|---|\n")
	fmt.Fprintf(&sb, "| On the account | %d |\n", r.ServerCount)
	fmt.Fprintf(&sb, "| Deployed | %d |\n", len(r.Deployed))
	fmt.Fprintf(&sb, "| Not deployed | %d |\n\n", len(r.Undeployed))

	writeList(&sb, "Deployed", r.Deployed)
	writeList(&sb, "Not deployed", r.Undeployed)

	switch {
	case r.Imported:
		sb.WriteString("Deployed objects were re-imported from the account.\n")
	case len(r.Deployed) > 0:
		sb.WriteString("Deployed objects were **not** re-imported.\n")
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, ids []domain.ScriptID) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, id := range ids {
		fmt.Fprintf(sb, "- `%s`\n", id)
	}
	sb.WriteString("\n")
}

// RenderMarkdown renders md for the terminal with the named glamour style
// ("dark", "light", "notty", ...), or the auto-detected one when style is
// empty.
func RenderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

// RenderVerifyReport returns the report as plain markdown when plain is set,
// otherwise rendered for the terminal.
func RenderVerifyReport(r domain.VerifyReport, plain bool, width int) (string, error) {
	md := VerifyMarkdown(r)
	if plain {
		return md, nil
	}
	return RenderMarkdown(md, "", width)
}
