package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quvia/centre/internal/domain"
)

func TestGenerateReport_DefaultsToToday(t *testing.T) {
	e := newEnv()
	e.reports.Report = "/data/report-2026-03-10.md"
	uc := NewGenerateReport(e.reports, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), GenerateReportInput{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", out.Date)
	assert.Equal(t, "/data/report-2026-03-10.md", out.Path)
	assert.Equal(t, []string{"2026-03-10"}, e.reports.Generated)
}

func TestGenerateReport_ExplicitDate(t *testing.T) {
	e := newEnv()
	uc := NewGenerateReport(e.reports, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), GenerateReportInput{Date: "2026-02-14"})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", out.Date)
}

func TestGenerateReport_InvalidDate(t *testing.T) {
	e := newEnv()
	uc := NewGenerateReport(e.reports, e.clock, e.logger)

	_, err := uc.Execute(context.Background(), GenerateReportInput{Date: "03/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
