package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to a Markdown document.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Generation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated at: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	if summary.Subject.Path != "" {
		sb.WriteString("## Subject\n\n")
		sb.WriteString(fmt.Sprintf("- Path: %s\n\n", summary.Subject.Path))
	}

	sb.WriteString("## Settings\n\n")
	sb.WriteString(fmt.Sprintf("- Colors: %s\n", strings.Join(summary.Settings.Colors, ", ")))
	sb.WriteString(fmt.Sprintf("- Sizes: %s\n", joinInts(summary.Settings.Sizes)))
	if summary.Settings.SilhouetteEnabled {
		sb.WriteString(fmt.Sprintf("- Silhouette: enabled (x%.1f)\n", summary.Settings.SilhouetteMultiplier))
	} else {
		sb.WriteString("- Silhouette: disabled\n")
	}
	sb.WriteString(fmt.Sprintf("- Workers: %d\n\n", summary.Settings.Workers))

	sb.WriteString("## Outputs\n\n")
	sb.WriteString("| File | Background | Shadow | Size | Format | Bytes | Status |\n")
	sb.WriteString("|------|-----------|--------|------|--------|-------|--------|\n")
	for _, out := range summary.Outputs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %dx%d | %s | %s | %s |\n",
			out.Path,
			out.Background,
			out.ShadowName,
			out.CanvasWidth, out.CanvasHeight,
			out.Format,
			formatBytes(int64(out.ByteLength)),
			statusOf(out)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Totals\n\n")
	sb.WriteString(fmt.Sprintf("- Images: %d\n", len(summary.Outputs)))
	sb.WriteString(fmt.Sprintf("- Failed: %d\n", summary.FailedCount()))
	sb.WriteString(fmt.Sprintf("- Total size: %s\n", formatBytes(summary.TotalBytes())))

	return sb.String()
}

func statusOf(out OutputInfo) string {
	switch {
	case out.Err != nil:
		return fmt.Sprintf("Failed: %s", out.Err)
	case out.BudgetExceeded:
		return "Over budget"
	default:
		return "OK"
	}
}

// formatBytes formats a byte count in human-readable form.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
