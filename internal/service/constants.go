package service

// Dashboard presentation windows.
const (
	// RecentRunCount is how many runs the dashboard lists.
	RecentRunCount = 5

	// ChartDays is the span of the CTL/ATL trend chart.
	ChartDays = 90

	// WeeklyChartWeeks is how many weekly-distance bars the dashboard shows.
	WeeklyChartWeeks = 12
)
