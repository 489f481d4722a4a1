package tui

import "github.com/MKhiriev/account-keeper/models"

type probeDoneMsg struct {
	status models.SessionStatus
}

type loginDoneMsg struct {
	err error
}

type logoutDoneMsg struct{}

// sessionChangedMsg and stateChangedMsg carry no data: the model re-reads
// the services when it handles them.
type sessionChangedMsg struct{}

type stateChangedMsg struct{}

type opKind int

const (
	opRefresh opKind = iota
	opAdd
	opRemove
	opSyncAll
	opSyncOne
)

type opDoneMsg struct {
	op  opKind
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
