package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/service"
)

// RiskModel is the injury risk screen model
type RiskModel struct {
	service    *service.Service
	assessment *analysis.InjuryRiskAssessment
	viewport   viewport.Model
	loading    bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewRiskModel creates a new injury risk model
func NewRiskModel(svc *service.Service, width, height int) RiskModel {
	m := RiskModel{
		service: svc,
		loading: true,
		width:   width,
		height:  height,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the risk screen
func (m RiskModel) Init() tea.Cmd {
	return m.loadRisk
}

type riskLoadedMsg struct {
	assessment analysis.InjuryRiskAssessment
	err        error
}

func (m RiskModel) loadRisk() tea.Msg {
	assessment, err := m.service.GetInjuryRisk()
	return riskLoadedMsg{assessment: assessment, err: err}
}

// Update handles messages
func (m RiskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case riskLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.assessment = &msg.assessment
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.assessment != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadRisk
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the risk screen
func (m RiskModel) View() string {
	if m.loading {
		return "\n  Assessing injury risk..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.ready {
		return m.viewport.View()
	}
	return m.renderContent()
}

func (m RiskModel) renderContent() string {
	a := m.assessment
	if a == nil {
		return "\n  No assessment available."
	}

	var sections []string
	sections = append(sections, m.renderScoreCard())

	if len(a.RiskFactors) > 0 {
		sections = append(sections, m.renderFactors())
	}
	if len(a.Indicators) > 0 {
		sections = append(sections, m.renderOverreaching())
	}
	sections = append(sections, m.renderRecommendations())
	if len(a.RecoveryPlan) > 0 {
		sections = append(sections, m.renderRecoveryPlan())
	}

	sections = append(sections, statusStyle.Render("Press 'r' to refresh, j/k to scroll"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RiskModel) renderScoreCard() string {
	a := m.assessment
	title := cardTitleStyle.Render("Injury Risk")

	level := riskStyle(a.RiskLevel).Render(string(a.RiskLevel))
	bar := RenderProgressBar(a.OverallRiskScore/100, 30)

	lines := []string{
		RenderMetric("Risk score", fmt.Sprintf("%.0f / 100", a.OverallRiskScore), ""),
		bar,
		RenderMetric("Level", level, ""),
		RenderMetric("Overreaching", string(a.OverreachingStatus), ""),
		RenderMetric("Runs analyzed", fmt.Sprintf("%d", a.RunsAnalyzed), "last 90 days"),
		RenderMetric("Confidence", fmt.Sprintf("%.0f%%", a.Confidence*100), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m RiskModel) renderFactors() string {
	title := cardTitleStyle.Render("Risk Factors")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-22s  %5s  %-8s", "Factor", "Score", "Severity"))
	rows := []string{header}

	for _, f := range m.assessment.RiskFactors {
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-22s  %5.0f  %-8s", f.Name, f.Score, f.Severity)))
		rows = append(rows, statusStyle.Render("  "+f.Description))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m RiskModel) renderOverreaching() string {
	a := m.assessment
	title := cardTitleStyle.Render("Warning Signs")

	var lines []string
	for _, ind := range a.Indicators {
		lines = append(lines, warningStyle.Render("• ")+ind)
	}
	if a.DaysInCurrentState > 0 {
		lines = append(lines, "")
		lines = append(lines, statusStyle.Render(fmt.Sprintf("Estimated %d days in this state", a.DaysInCurrentState)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func (m RiskModel) renderRecommendations() string {
	title := cardTitleStyle.Render("What To Do")
	recs := m.assessment.Recommendations

	var lines []string
	appendTier := func(label string, style lipgloss.Style, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, style.Render(label))
		for _, item := range items {
			lines = append(lines, "  • "+item)
		}
	}

	appendTier("Now", errorStyle, recs.Immediate)
	appendTier("This week", warningStyle, recs.ShortTerm)
	appendTier("Longer term", successStyle, recs.LongTerm)
	appendTier("Keep an eye on", statusStyle, recs.Monitoring)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func (m RiskModel) renderRecoveryPlan() string {
	title := cardTitleStyle.Render("Recovery Plan")

	var lines []string
	for _, phase := range m.assessment.RecoveryPlan {
		lines = append(lines, helpKeyStyle.Render(fmt.Sprintf("%s (%d days)", phase.Phase, phase.DurationDays)))
		lines = append(lines, statusStyle.Render("  "+phase.Guidance))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}
