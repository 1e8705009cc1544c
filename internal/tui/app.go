package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/surendranb/runsight-core-sub000/internal/config"
	"github.com/surendranb/runsight-core-sub000/internal/service"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenRisk
	ScreenPredictions
	ScreenRecommendations
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard       DashboardModel
	risk            RiskModel
	predictions     PredictionsModel
	recommendations RecommendationsModel
	help            HelpModel

	// Services
	db      *store.Store
	service *service.Service
	units   Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.Store, svc *service.Service, display config.DisplayConfig) *App {
	units := NewUnits(display)
	return &App{
		screen:          ScreenDashboard,
		db:              db,
		service:         svc,
		units:           units,
		dashboard:       NewDashboardModel(svc, units),
		risk:            NewRiskModel(svc, 0, 0),
		predictions:     NewPredictionsModel(svc, units, 0, 0),
		recommendations: NewRecommendationsModel(svc, units),
		help:            NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard = NewDashboardModel(a.service, a.units)
			return a, a.dashboard.Init()
		case "2":
			a.screen = ScreenRisk
			a.risk = NewRiskModel(a.service, a.width, a.height)
			return a, a.risk.Init()
		case "3":
			a.screen = ScreenPredictions
			a.predictions = NewPredictionsModel(a.service, a.units, a.width, a.height)
			return a, a.predictions.Init()
		case "4":
			a.screen = ScreenRecommendations
			a.recommendations = NewRecommendationsModel(a.service, a.units)
			return a, a.recommendations.Init()
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenRisk:
		var m tea.Model
		m, cmd = a.risk.Update(msg)
		a.risk = m.(RiskModel)
	case ScreenPredictions:
		var m tea.Model
		m, cmd = a.predictions.Update(msg)
		a.predictions = m.(PredictionsModel)
	case ScreenRecommendations:
		var m tea.Model
		m, cmd = a.recommendations.Update(msg)
		a.recommendations = m.(RecommendationsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenRisk:
		content = a.risk.View()
	case ScreenPredictions:
		content = a.predictions.View()
	case ScreenRecommendations:
		content = a.recommendations.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("RunSight Training Analyzer")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Injury Risk", ScreenRisk},
		{"3", "Predictions", ScreenPredictions},
		{"4", "Advice", ScreenRecommendations},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
