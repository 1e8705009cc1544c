package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/surendranb/runsight-core-sub000/internal/service"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	service *service.Service
	units   Units
	data    *service.DashboardData
	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(svc *service.Service, units Units) DashboardModel {
	return DashboardModel{
		service: svc,
		units:   units,
		loading: true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.service.GetDashboardData()
	return dashboardDataMsg{data: data, err: err}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Analyzing run history..."
	}

	if m.err != nil && m.data == nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || m.data.TotalRuns == 0 {
		return "\n  No runs yet. Import a run export with the -import flag."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFitnessCard(), "  ", m.renderLoadCard())
	sections = append(sections, topRow)

	if len(m.data.CTLHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	weekRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderWeekCard(), "  ", m.renderRecentRuns())
	sections = append(sections, weekRow)

	if len(m.data.WeeklyMeters) > 0 {
		sections = append(sections, m.renderWeeklyChart())
	}

	help := statusStyle.Render("Press 'r' to refresh, '2' for injury risk, '3' for predictions")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Fitness & Form")
	fit := m.data.Fitness

	conf := ""
	if fit.Confidence > 0 && fit.Confidence < 0.5 {
		conf = warningStyle.Render(fmt.Sprintf("low confidence (%.0f%%)", fit.Confidence*100))
	}

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.0f", fit.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.0f", fit.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%.0f", fit.TSB), ""),
		RenderMetric("Ramp rate", fmt.Sprintf("%+.1f/wk", fit.RampRate), ""),
		"",
		statusStyle.Render(m.data.FormDescription),
	}
	if conf != "" {
		lines = append(lines, conf)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")
	acwr := m.data.ACWR

	status := acwrStyle(acwr.Status).Render(string(acwr.Status))

	var lines []string
	if acwr.Confidence == 0 {
		lines = []string{
			statusStyle.Render("Not enough history yet"),
			statusStyle.Render(fmt.Sprintf("%d of 28 load days recorded", acwr.DaysOfData)),
		}
	} else {
		lines = []string{
			RenderMetric("Workload ratio", fmt.Sprintf("%.2f", acwr.ACWR), ""),
			RenderMetric("Status", status, ""),
			RenderMetric("Acute (7d avg)", m.units.FormatDistance(acwr.AcuteLoad), "per day"),
			RenderMetric("Chronic (28d avg)", m.units.FormatDistance(acwr.ChronicLoad), "per day"),
		}
		if m.data.TRIMPACWR.Confidence > 0 {
			lines = append(lines, RenderMetric("TRIMP ratio", fmt.Sprintf("%.2f", m.data.TRIMPACWR.ACWR), ""))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Fitness Trend - CTL vs ATL")

	graph := asciigraph.PlotMany(
		[][]float64{m.data.CTLHistory, m.data.ATLHistory},
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
	)

	legend := statusStyle.Render("green: fitness (CTL)   red: fatigue (ATL)")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderWeeklyChart() string {
	title := cardTitleStyle.Render("Weekly Distance - last 12 weeks")

	var peak float64
	for _, meters := range m.data.WeeklyMeters {
		if meters > peak {
			peak = meters
		}
	}
	if peak == 0 {
		peak = 1
	}

	rows := make([]string, 0, len(m.data.WeeklyMeters))
	for i, meters := range m.data.WeeklyMeters {
		label := ""
		if i < len(m.data.WeeklyLabels) {
			label = m.data.WeeklyLabels[i]
		}
		rows = append(rows, fmt.Sprintf("%-7s %s %8s",
			label,
			RenderProgressBar(meters/peak, 30),
			m.units.FormatDistance(meters)))
	}

	chart := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, chart))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Runs", fmt.Sprintf("%d", m.data.WeekRunCount), ""),
		RenderMetric("Distance", m.units.FormatDistance(m.data.WeekDistance), ""),
		RenderMetric("Time", FormatDuration(m.data.WeekTime), ""),
		RenderMetric("TRIMP", fmt.Sprintf("%.0f", m.data.WeekTRIMP), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderRecentRuns() string {
	title := cardTitleStyle.Render("Recent Runs")

	if len(m.data.RecentRuns) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No runs yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-12s  %8s  %7s  %6s  %5s",
		"When", "Distance", "Pace", "TRIMP", "PSI"))

	rows := []string{header}
	for _, rs := range m.data.RecentRuns {
		r := rs.Run

		trimp := "-"
		if rs.TRIMP.Confidence > 0 {
			trimp = fmt.Sprintf("%.0f", rs.TRIMP.Value)
		}

		psi := "-"
		if rs.PSI.Confidence > 0 {
			psi = fmt.Sprintf("%.1f", rs.PSI.Score)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-12s  %8s  %7s  %6s  %5s",
			humanize.Time(r.StartDate),
			m.units.FormatDistance(r.Distance),
			m.units.FormatPace(r.PaceSecPerKm()),
			trimp,
			psi,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}
