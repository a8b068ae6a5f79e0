package tui

import (
	"context"
	"errors"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/service"
	"github.com/blerimk/schoolroster/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services  *service.Services
	exportDir string
	buildInfo models.AppBuildInfo
}

func New(services *service.Services, exportDir string, buildInfo models.AppBuildInfo, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, exportDir: exportDir, buildInfo: buildInfo}, nil
}

// LoginFlow runs the sign-in program until a user authenticates or quits.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	pages := map[string]tea.Model{
		"login": NewLoginModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "login", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.User{}, ErrUserQuit
	}

	return result.resultUser, nil
}

// MainLoop runs the roster program for an authenticated user. It returns
// logout=true when the user asked to switch accounts rather than quit.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	model := newRosterModel(ctx, t.services, user, t.exportDir)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(rosterModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
