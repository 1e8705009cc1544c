package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/surendranb/runsight-core-sub000/internal/service"
)

// PredictionsModel is the race predictions and pacing screen model
type PredictionsModel struct {
	service  *service.Service
	units    Units
	data     *service.PredictionsData
	viewport viewport.Model
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewPredictionsModel creates a new predictions model
func NewPredictionsModel(svc *service.Service, units Units, width, height int) PredictionsModel {
	m := PredictionsModel{
		service: svc,
		units:   units,
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

// Init initializes the predictions screen
func (m PredictionsModel) Init() tea.Cmd {
	return m.loadPredictions
}

type predictionsLoadedMsg struct {
	data *service.PredictionsData
	err  error
}

func (m PredictionsModel) loadPredictions() tea.Msg {
	data, err := m.service.GetPredictions()
	return predictionsLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m PredictionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
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
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadPredictions
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the predictions screen
func (m PredictionsModel) View() string {
	if m.loading {
		return "\n  Crunching predictions..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.ready {
		return m.viewport.View()
	}
	return m.renderContent()
}

func (m PredictionsModel) renderContent() string {
	if m.data == nil {
		return "\n  No prediction data available."
	}

	sections := []string{
		m.renderPredictionsTable(),
		m.renderFatigueCard(),
		m.renderPacingCard(),
		statusStyle.Render("Press 'r' to refresh, j/k to scroll"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func distanceName(meters float64) string {
	switch {
	case meters >= 42000:
		return "Marathon"
	case meters >= 21000:
		return "Half Marathon"
	case meters >= 10000:
		return "10K"
	default:
		return "5K"
	}
}

func (m PredictionsModel) renderPredictionsTable() string {
	title := cardTitleStyle.Render("Race Predictions")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-14s %10s %12s %20s %6s",
		"Distance", "Time", "Pace", "Range", "Conf"))
	rows := []string{header}

	usable := 0
	for _, p := range m.data.Predictions {
		if p.Confidence == 0 {
			continue
		}
		usable++
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-14s %10s %12s %9s - %8s %5.0f%%",
			distanceName(p.DistanceMeters),
			FormatRaceTime(p.PredictedSeconds),
			m.units.FormatPaceWithUnit(p.PredictedPace),
			FormatRaceTime(p.Interval.Optimistic),
			FormatRaceTime(p.Interval.Conservative),
			p.Confidence*100)))
	}

	if usable == 0 {
		msg := statusStyle.Render("Not enough history yet. Predictions need at least 10 runs\nwith heart rate data in the last 90 days.")
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, msg))
	}

	note := statusStyle.Render("Projected from your recent runs. Intervals widen with pace variability.")
	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table, note))
}

func (m PredictionsModel) renderFatigueCard() string {
	title := cardTitleStyle.Render("Fatigue Resistance")
	f := m.data.Fatigue
	ns := m.data.NegativeSplit

	if f.SampleSize == 0 {
		msg := statusStyle.Render("Needs more runs with heart rate data to profile.")
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, msg))
	}

	lines := []string{
		RenderMetric("Overall", fmt.Sprintf("%.0f / 100", f.Score), ""),
		RenderProgressBar(f.Score/100, 30),
		RenderMetric("Pace consistency", fmt.Sprintf("%.0f", f.PaceConsistency), ""),
		RenderMetric("HR drift control", fmt.Sprintf("%.0f", f.HRDriftEfficiency), ""),
		RenderMetric("Distance resilience", fmt.Sprintf("%.0f", f.DistanceResilience), ""),
		RenderMetric("Negative split odds", fmt.Sprintf("%.0f%%", ns.Probability*100),
			fmt.Sprintf("from %d runs", ns.SampleSize)),
	}
	if f.Estimated {
		lines = append(lines, statusStyle.Render("Estimated from whole-run averages, not recorded splits."))
	}

	return cardStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PredictionsModel) renderPacingCard() string {
	title := cardTitleStyle.Render("Pacing Discipline")
	p := m.data.Pacing

	if p.SampleSize == 0 {
		msg := statusStyle.Render("Needs more qualifying runs to grade pacing.")
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, msg))
	}

	gradeStyle := successStyle
	switch p.Grade {
	case "C", "D":
		gradeStyle = warningStyle
	case "F":
		gradeStyle = errorStyle
	}

	lines := []string{
		RenderMetric("Grade", gradeStyle.Render(p.Grade),
			fmt.Sprintf("from %d runs", p.SampleSize)),
	}

	if len(p.Issues) == 0 {
		lines = append(lines, successStyle.Render("No recurring pacing issues detected."))
	}
	for _, issue := range p.Issues {
		lines = append(lines, warningStyle.Render("• ")+issue.Description)
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  seen in %.0f%% of runs", issue.Frequency*100)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}
