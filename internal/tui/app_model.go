package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/account-keeper/internal/service"
	"github.com/MKhiriev/account-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

type screen int

const (
	screenProbe screen = iota
	screenLogin
	screenList
	screenAdd
)

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.BuildInfo
	copyText  func(string) error

	currentScreen screen
	login         loginModel
	list          listModel
	form          addFormModel

	showBuildInfo bool
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	loggingOut    bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.BuildInfo) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		buildInfo:     buildInfo,
		copyText:      clipboard.WriteAll,
		currentScreen: screenProbe,
		login:         newLoginModel(),
		list:          newListModel(),
		form:          newAddFormModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.cmdProbe(), m.list.spinner.Tick, textinput.Blink)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				return m, m.cmdRemove(m.confirm.account.ID)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
			}
			return m, nil
		}
	case probeDoneMsg:
		m.applySession(msg.status)
		return m, nil
	case sessionChangedMsg:
		m.applySession(m.services.Session.Status())
		return m, nil
	case stateChangedMsg:
		m.syncState()
		return m, nil
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.applySession(m.services.Session.Status())
		return m, nil
	case logoutDoneMsg:
		m.applySession(m.services.Session.Status())
		m.loggingOut = false
		return m, nil
	case opDoneMsg:
		return m.handleOpDone(msg)
	case copiedMsg:
		if msg.err != nil {
			m.list.status = "Не удалось скопировать: " + msg.err.Error()
		} else {
			m.list.status = "E-mail скопирован"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenAdd:
		return m.updateAdd(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	var out string
	switch m.currentScreen {
	case screenProbe:
		out = renderPage("ACCOUNTKEEPER", m.list.spinner.View()+" Проверка сессии...", "")
	case screenLogin:
		out = m.login.View()
	case screenList:
		out = m.list.View()
	case screenAdd:
		out = m.form.View()
	}

	if m.showConfirm {
		out += "\n\n" + m.confirm.View()
	}
	if m.showError {
		out += "\n\n" + m.errorOverlay.View()
	}
	return out
}

// applySession moves between the login screen and the account screens. The
// cached list is never shown while the session is not authenticated.
func (m *appModel) applySession(status models.SessionStatus) {
	switch status {
	case models.SessionAuthenticated:
		if m.currentScreen == screenProbe || m.currentScreen == screenLogin {
			m.login.reset()
			m.login.notice = ""
			m.currentScreen = screenList
		}
		m.syncState()
	case models.SessionUnauthenticated:
		if m.currentScreen == screenLogin {
			return
		}
		if m.currentScreen != screenProbe && !m.loggingOut {
			m.login.notice = "Сессия истекла, войдите снова"
		}
		m.currentScreen = screenLogin
		m.showConfirm = false
		m.showError = false
		m.form.clear()
		m.list.status = ""
		m.login.reset()
	}
}

func (m *appModel) syncState() {
	m.list.setItems(m.services.Accounts.Accounts())
	m.list.listBusy = m.services.Accounts.Busy()
	m.list.syncBusy = m.services.Sync.Busy()
}

func (m *appModel) showErrorf(msg string) {
	m.showError = true
	m.errorOverlay.message = msg
}

func (m appModel) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.op == opAdd {
		m.form.submitting = false
	}
	if m.currentScreen == screenLogin {
		// The session ended while the request was in flight.
		return m, nil
	}

	if msg.err != nil {
		if msg.op == opAdd {
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.showErrorf(humanizeError(msg.err))
		return m, nil
	}

	switch msg.op {
	case opAdd:
		m.form.clear()
		m.currentScreen = screenList
		m.list.status = "Аккаунт добавлен"
	case opRemove:
		m.list.status = "Аккаунт удалён"
	case opSyncAll, opSyncOne:
		m.list.status = "Синхронизация запущена"
	case opRefresh:
		m.list.status = "Список обновлён"
	}
	m.syncState()
	return m, cmdClearStatus()
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		if m.login.submitting {
			return m, nil
		}
		password := m.login.password()
		if password == "" {
			m.login.errMsg = "Пароль обязателен"
			return m, nil
		}
		m.login.errMsg = ""
		m.login.submitting = true
		return m, m.cmdLogin(password)
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.newItem):
		m.form.clear()
		m.currentScreen = screenAdd
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		if acc, ok := m.list.current(); ok {
			m.confirm = confirmModel{account: acc}
			m.showConfirm = true
		}
	case key.Matches(keyMsg, keys.sync):
		if !m.list.syncBusy {
			m.list.syncBusy = true
			return m, m.cmdSyncAll()
		}
	case key.Matches(keyMsg, keys.syncOne):
		if acc, ok := m.list.current(); ok && !m.list.syncBusy {
			m.list.syncBusy = true
			return m, m.cmdSyncOne(acc.ID)
		}
	case key.Matches(keyMsg, keys.refresh):
		if !m.list.listBusy {
			m.list.listBusy = true
			return m, m.cmdRefresh()
		}
	case key.Matches(keyMsg, keys.copy):
		if acc, ok := m.list.current(); ok {
			return m, m.cmdCopy(acc.Email)
		}
	case key.Matches(keyMsg, keys.logout):
		m.loggingOut = true
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.form.clear()
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			draft := m.form.draft()
			if draft.Email == "" || draft.Password == "" {
				m.form.errMsg = "E-mail и пароль обязательны"
				return m, nil
			}
			m.form.errMsg = ""
			m.form.submitting = true
			return m, m.cmdAdd(draft)
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m appModel) cmdProbe() tea.Cmd {
	ctx, gate := m.ctx, m.services.Session
	return func() tea.Msg {
		return probeDoneMsg{status: gate.Probe(ctx)}
	}
}

func (m appModel) cmdLogin(password string) tea.Cmd {
	ctx, gate := m.ctx, m.services.Session
	return func() tea.Msg {
		return loginDoneMsg{err: gate.Login(ctx, password)}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx, services := m.ctx, m.services
	return func() tea.Msg {
		_ = services.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m appModel) cmdRefresh() tea.Cmd {
	ctx, store := m.ctx, m.services.Accounts
	return func() tea.Msg {
		return opDoneMsg{op: opRefresh, err: store.Fetch(ctx)}
	}
}

func (m appModel) cmdAdd(draft models.AccountDraft) tea.Cmd {
	ctx, store := m.ctx, m.services.Accounts
	return func() tea.Msg {
		return opDoneMsg{op: opAdd, err: store.Add(ctx, draft)}
	}
}

func (m appModel) cmdRemove(id models.AccountID) tea.Cmd {
	ctx, store := m.ctx, m.services.Accounts
	return func() tea.Msg {
		return opDoneMsg{op: opRemove, err: store.Remove(ctx, id)}
	}
}

func (m appModel) cmdSyncAll() tea.Cmd {
	ctx, syncer := m.ctx, m.services.Sync
	return func() tea.Msg {
		return opDoneMsg{op: opSyncAll, err: syncer.SyncAll(ctx)}
	}
}

func (m appModel) cmdSyncOne(id models.AccountID) tea.Cmd {
	ctx, syncer := m.ctx, m.services.Sync
	return func() tea.Msg {
		return opDoneMsg{op: opSyncOne, err: syncer.SyncOne(ctx, id)}
	}
}

func (m appModel) cmdCopy(text string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		return copiedMsg{err: copyText(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
