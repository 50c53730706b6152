package ui

import (
	"fmt"
	"strings"

	"mediagrab/internal/util/format"
)

func (m Model) viewHeader() string {
	title := m.styles.Title.Render(fmt.Sprintf("mediagrab — %s download", m.req.Mode()))
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%s • %s • %s • q: quit",
		truncate(m.req.URL, 48), m.req.Format, m.req.Quality))
	return title + "\n" + sub
}

func (m Model) viewItems() string {
	if len(m.order) == 0 {
		return m.styles.Box.Render(m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.Faint.Render("probing..."))
	}
	var b strings.Builder
	for _, key := range m.order {
		b.WriteString(m.viewItem(m.rows[key]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewItem(row *itemRow) string {
	name := m.styles.ItemName.Render(truncate(row.name, 48))

	var right string
	switch {
	case row.err != "":
		right = m.styles.Error.Render("✗ " + truncate(row.err, 72))
	case row.pp != "":
		right = m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.StagePP.Render(row.pp)
	case row.done:
		right = m.styles.Success.Render("✓ done") + " " + m.styles.Faint.Render(format.Bytes(row.downloaded))
	case row.percent >= 0 && row.percent <= 100:
		right = fmt.Sprintf("%s %5.1f%%", row.bar.ViewAs(row.percent/100.0), row.percent)
	default:
		right = m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.StageDL.Render(format.Bytes(row.downloaded))
	}
	return m.styles.Box.Render(name + "\n" + right)
}

func (m Model) viewFooter() string {
	s := m.stats
	line := fmt.Sprintf("Files: %d/%d done • Errors: %d", s.Completed, s.TotalFiles, s.Errors)
	if s.Bytes > 0 {
		line += " • " + format.Bytes(s.Bytes)
	}
	return m.styles.Info.Render(line)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
