package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	keys := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Keyboard Shortcuts"),
		RenderKeyHelp("1", "Dashboard"),
		RenderKeyHelp("2", "Injury risk"),
		RenderKeyHelp("3", "Race predictions and pacing"),
		RenderKeyHelp("4", "Training advice"),
		RenderKeyHelp("r", "Refresh current screen"),
		RenderKeyHelp("j/k", "Scroll"),
		RenderKeyHelp("?", "This help screen"),
		RenderKeyHelp("esc", "Back to dashboard"),
		RenderKeyHelp("q", "Quit"),
	))

	metrics := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Metrics Explained"),
		RenderKeyHelp("ACWR", "Acute:chronic workload ratio. Last 7 days of load over the"),
		helpDescStyle.Render("      28-day daily average. 0.8 to 1.3 is the sweet spot; above"),
		helpDescStyle.Render("      1.5 means the recent ramp outpaces what you are adapted to."),
		RenderKeyHelp("TRIMP", "Training impulse. Duration weighted by how close your heart"),
		helpDescStyle.Render("      rate sat to maximum. One number for how hard a run was."),
		RenderKeyHelp("CTL", "Chronic training load. A 42-day weighted average of daily"),
		helpDescStyle.Render("      TRIMP. Your fitness. Builds slowly, fades slowly."),
		RenderKeyHelp("ATL", "Acute training load. The 7-day equivalent. Your fatigue."),
		RenderKeyHelp("TSB", "Training stress balance, CTL minus ATL. Positive means fresh,"),
		helpDescStyle.Render("      very negative means accumulated fatigue is masking fitness."),
		RenderKeyHelp("PSI", "Physiological strain index, 0 to 10. Combines heart rate"),
		helpDescStyle.Render("      strain with heat and humidity stress for a single run."),
	))

	notes := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("About the Numbers"),
		helpDescStyle.Render("Everything is computed locally from your imported runs. Metrics"),
		helpDescStyle.Render("carry a confidence score that grows with history; anything marked"),
		helpDescStyle.Render("estimated is inferred from whole-run averages rather than measured"),
		helpDescStyle.Render("splits. Set resting and max heart rate in the config file for the"),
		helpDescStyle.Render("most accurate strain and prediction numbers."),
	))

	return lipgloss.JoinVertical(lipgloss.Left, keys, metrics, notes)
}
