package tui

import (
	"github.com/blerimk/schoolroster/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the RootModel to another registered page. An optional
// Payload is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the authentication flow. On success RootModel quits
// the login program and hands User back to the caller.
type LoginResult struct {
	User models.User
	Err  error
}

type rosterLoadedMsg struct {
	students []models.Student
	err      error
}

type studentSavedMsg struct {
	created bool
	err     error
}

type studentDeletedMsg struct {
	err error
}

type staffAddedMsg struct {
	username string
	err      error
}

type photoExportedMsg struct {
	path string
	err  error
}
