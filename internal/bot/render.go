package bot

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/models"
)

func renderStandings(rows []models.Standing) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Pos", "Driver", "Pts", "W", "T5", "T10", "P", "Avg"})
	for i, s := range rows {
		t.AppendRow(table.Row{
			i + 1,
			s.Driver,
			s.Points,
			s.Wins,
			s.Top5s,
			s.Top10s,
			s.Poles,
			formatAvg(s.AvgFinish),
		})
	}
	return t.Render()
}

func renderSchedule(races []models.Race) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Track", "Date", "Series"})
	for _, r := range races {
		t.AppendRow(table.Row{r.Track, r.Date, r.Series})
	}
	return t.Render()
}

func renderProfile(s *models.Standing) string {
	return fmt.Sprintf(
		"%s - %s\nPoints: %d\nWins: %d\nTop 5s: %d\nTop 10s: %d\nPoles: %d\nAvg Finish: %s",
		s.Driver, s.Series, s.Points, s.Wins, s.Top5s, s.Top10s, s.Poles, formatAvg(s.AvgFinish),
	)
}

// reportChunkSize caps how many result lines go into one message.
const reportChunkSize = 25

// renderReport renders one race's report as a series of messages, the header
// and winner line on the first, at most reportChunkSize result lines each.
func renderReport(series models.Series, season string, report league.RaceReport) []string {
	var messages []string
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Results - %s (%s)\n", series, report.Track, season)
	if report.Winner != "" {
		fmt.Fprintf(&sb, "Winner: %s\n", report.Winner)
	}

	for i, row := range report.Rows {
		if i > 0 && i%reportChunkSize == 0 {
			messages = append(messages, sb.String())
			sb.Reset()
		}
		fmt.Fprintf(&sb, "%d. %s (%d pts)", row.Position, row.Driver, row.Points)
		if row.Pole {
			sb.WriteString(" (Pole)")
		}
		if row.FastestLap {
			sb.WriteString(" (FL)")
		}
		sb.WriteString("\n")
	}
	return append(messages, sb.String())
}

func renderLeaderboard(season string, board []league.SeriesLeaders) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ASCRL Leaderboard - %s\n", season)
	for _, entry := range board {
		fmt.Fprintf(&sb, "\n%s Top 3:\n", entry.Series)
		if len(entry.Leaders) == 0 {
			sb.WriteString("No data\n")
			continue
		}
		for i, s := range entry.Leaders {
			fmt.Fprintf(&sb, "%d. %s - %d pts (%dW)\n", i+1, s.Driver, s.Points, s.Wins)
		}
	}
	return sb.String()
}

func formatAvg(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *avg)
}
