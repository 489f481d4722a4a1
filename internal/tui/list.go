package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/account-keeper/models"
	"github.com/charmbracelet/bubbles/spinner"
)

const emailColumnWidth = 32

type listModel struct {
	items    []models.Account
	idx      int
	listBusy bool
	syncBusy bool
	spinner  spinner.Model
	status   string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s}
}

func (m listModel) current() (models.Account, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Account{}, false
	}
	return m.items[m.idx], true
}

// setItems replaces the rows and keeps the cursor on the same account when
// it is still present.
func (m *listModel) setItems(items []models.Account) {
	selected, ok := m.current()
	m.items = items

	if ok {
		for i, acc := range items {
			if acc.ID == selected.ID {
				m.idx = i
				return
			}
		}
	}
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Аккаунтов: %d", len(m.items))
	if m.listBusy {
		header += "  " + m.spinner.View() + " загрузка"
	}
	if m.syncBusy {
		header += "  " + m.spinner.View() + " синхронизация"
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("Нет аккаунтов\n")
	} else {
		b.WriteString(fmt.Sprintf("  %s %-12s %-17s %s\n", padRight("E-mail", emailColumnWidth), "Статус", "Последний вход", "Добавлен"))
		for i, acc := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			row := fmt.Sprintf("%s%s %s %-17s %s",
				cursor,
				padRight(fitText(acc.Email, emailColumnWidth), emailColumnWidth),
				padRight(statusBadge(acc.Status), 12),
				formatTimestamp(acc.LastLogin),
				formatTimestamp(acc.CreatedAt),
			)
			if i == m.idx {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return renderPage(
		"АККАУНТЫ",
		strings.TrimRight(b.String(), "\n"),
		"n: новый │ d: удалить │ s: синхр. все │ S: синхр. выбранный │ r: обновить │ c: копировать e-mail │ l: выйти │ q: закрыть",
	)
}
