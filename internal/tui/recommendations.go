package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/service"
)

// RecommendationsModel is the training advice screen model
type RecommendationsModel struct {
	service *service.Service
	units   Units
	recs    []analysis.Recommendation
	loading bool
	err     error
}

// NewRecommendationsModel creates a new recommendations model
func NewRecommendationsModel(svc *service.Service, units Units) RecommendationsModel {
	return RecommendationsModel{
		service: svc,
		units:   units,
		loading: true,
	}
}

// Init initializes the recommendations screen
func (m RecommendationsModel) Init() tea.Cmd {
	return m.loadRecommendations
}

type recommendationsLoadedMsg struct {
	recs []analysis.Recommendation
	err  error
}

func (m RecommendationsModel) loadRecommendations() tea.Msg {
	recs, err := m.service.GetRecommendations(nil)
	return recommendationsLoadedMsg{recs: recs, err: err}
}

// Update handles messages
func (m RecommendationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.recs = msg.recs

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadRecommendations
		}
	}
	return m, nil
}

// View renders the recommendations screen
func (m RecommendationsModel) View() string {
	if m.loading {
		return "\n  Building advice..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	title := cardTitleStyle.Render("Training Advice")

	if len(m.recs) == 0 {
		msg := statusStyle.Render("Nothing to flag right now. Keep logging runs and check back\nonce there is more history to work with.")
		card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, msg))
		return lipgloss.JoinVertical(lipgloss.Left, card,
			statusStyle.Render("Press 'r' to refresh"))
	}

	var cards []string
	for _, rec := range m.recs {
		cards = append(cards, m.renderRecommendation(rec))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, cards...)
	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
	return lipgloss.JoinVertical(lipgloss.Left, card,
		statusStyle.Render("Press 'r' to refresh"))
}

func (m RecommendationsModel) renderRecommendation(rec analysis.Recommendation) string {
	badge := priorityStyle(rec.Priority).Render(strings.ToUpper(string(rec.Priority)))

	lines := []string{
		badge + " " + metricValueStyle.Render(rec.Title),
		statusStyle.Render("  " + rec.Rationale),
	}
	if target := m.renderTargets(rec.Target); target != "" {
		lines = append(lines, helpDescStyle.Render("  "+target))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func (m RecommendationsModel) renderTargets(t analysis.TargetMetrics) string {
	var parts []string
	if t.WeeklyDistanceKm != nil {
		parts = append(parts, fmt.Sprintf("weekly %s to %s",
			m.units.FormatDistance(t.WeeklyDistanceKm.Min*1000),
			m.units.FormatDistance(t.WeeklyDistanceKm.Max*1000)))
	}
	if t.WeeklyTRIMP != nil {
		parts = append(parts, fmt.Sprintf("TRIMP %.0f to %.0f", t.WeeklyTRIMP.Min, t.WeeklyTRIMP.Max))
	}
	if t.EasyPct != nil {
		parts = append(parts, fmt.Sprintf("%.0f%% easy", *t.EasyPct))
	}
	if t.HardPct != nil {
		parts = append(parts, fmt.Sprintf("%.0f%% hard", *t.HardPct))
	}
	if t.RestDays != nil {
		parts = append(parts, fmt.Sprintf("%d rest days", *t.RestDays))
	}
	if t.PaceDeltaSecPerKm != nil {
		parts = append(parts, fmt.Sprintf("slow pace by %.0f s/km", *t.PaceDeltaSecPerKm))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Target: " + strings.Join(parts, ", ")
}
