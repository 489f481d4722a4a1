package tui

import (
	"strings"

	"github.com/MKhiriev/account-keeper/models"
	"github.com/charmbracelet/lipgloss"
)

const (
	uiDivider  = "──────────────────────────────────────────────────────"
	dateLayout = "02.01.2006 15:04"
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: выход"))

	return appStyle.Render(b.String())
}

// statusLabel maps an account status to its badge text. Unknown values are
// shown as inactive.
func statusLabel(s models.AccountStatus) string {
	switch s.Normalize() {
	case models.AccountActive:
		return "Активен"
	case models.AccountError:
		return "Ошибка"
	default:
		return "Неактивен"
	}
}

func statusBadge(s models.AccountStatus) string {
	label := "[" + statusLabel(s) + "]"
	switch s.Normalize() {
	case models.AccountActive:
		return badgeActiveStyle.Render(label)
	case models.AccountError:
		return badgeErrorStyle.Render(label)
	default:
		return badgeInactiveStyle.Render(label)
	}
}

// formatTimestamp renders ts in local time, or "никогда" for a missing value.
func formatTimestamp(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "никогда"
	}
	return ts.Local().Format(dateLayout)
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// padRight pads v to width visible cells; styled text is measured without
// its escape sequences.
func padRight(v string, width int) string {
	n := lipgloss.Width(v)
	if n >= width {
		return v
	}
	return v + strings.Repeat(" ", width-n)
}
