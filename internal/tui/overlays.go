package tui

import (
	"strings"

	"github.com/MKhiriev/account-keeper/models"
)

type confirmModel struct {
	account models.Account
}

func (m confirmModel) View() string {
	content := "Удалить аккаунт \"" + m.account.Email + "\"?\n\n"
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := "Ошибка\n\n" + m.message + "\n\nenter / esc закрыть"
	return overlayBoxStyle.Render(content)
}

func renderBuildInfoWindow(info models.BuildInfo) string {
	var b strings.Builder

	b.WriteString("Название приложения: AccountKeeper\n")
	b.WriteString("Версия: ")
	b.WriteString(info.Version)
	b.WriteString("\n")
	b.WriteString("Дата: ")
	b.WriteString(info.Date)
	b.WriteString("\n")
	b.WriteString("Коммит: ")
	b.WriteString(info.Commit)

	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", b.String(), "esc: назад")
}
