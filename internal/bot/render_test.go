package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/models"
)

func TestRenderReportChunking(t *testing.T) {
	report := league.RaceReport{Track: "Daytona", Winner: "driver 01"}
	for i := 1; i <= 36; i++ {
		report.Rows = append(report.Rows, league.ReportRow{
			Position: i,
			Driver:   fmt.Sprintf("driver %02d", i),
			Points:   40 - i,
		})
	}

	messages := renderReport(models.SeriesTruck, "Season 1", report)
	require.Len(t, messages, 2)

	assert.Contains(t, messages[0], "Truck Results - Daytona (Season 1)")
	assert.Contains(t, messages[0], "Winner: driver 01")
	assert.Equal(t, reportChunkSize, strings.Count(messages[0], " pts)"))

	assert.NotContains(t, messages[1], "Winner:")
	assert.Equal(t, 36-reportChunkSize, strings.Count(messages[1], " pts)"))
	assert.Contains(t, messages[1], "26. driver 26")
}

func TestRenderReportSmallRaceIsOneMessage(t *testing.T) {
	report := league.RaceReport{
		Track:  "Bristol",
		Winner: "#10 MajorBlaze",
		Rows: []league.ReportRow{
			{Position: 1, Driver: "#10 MajorBlaze", Points: 40, Pole: true, FastestLap: true},
			{Position: 2, Driver: "#9 DakotaThomas", Points: 35},
		},
	}

	messages := renderReport(models.SeriesTruck, "Season 1", report)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "1. #10 MajorBlaze (40 pts) (Pole) (FL)")
	assert.Contains(t, messages[0], "2. #9 DakotaThomas (35 pts)")
}
