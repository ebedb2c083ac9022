package usecase

import (
	"context"
	"fmt"

	"github.com/quvia/centre/internal/domain"
)

// GenerateReportInput optionally names the day to report on.
type GenerateReportInput struct {
	Date string
}

// GenerateReportOutput names the day reported on and where the report went.
type GenerateReportOutput struct {
	Date string
	Path string
}

// GenerateReport renders the productivity report for a day. An empty date
// means today.
type GenerateReport struct {
	reports domain.ReportWriter
	clock   domain.Clock
	logger  domain.Logger
}

// NewGenerateReport creates a new GenerateReport use case.
func NewGenerateReport(reports domain.ReportWriter, clock domain.Clock, logger domain.Logger) *GenerateReport {
	return &GenerateReport{reports: reports, clock: clock, logger: logger}
}

// Execute generates and persists the report.
func (uc *GenerateReport) Execute(ctx context.Context, in GenerateReportInput) (*GenerateReportOutput, error) {
	date := in.Date
	if date == "" {
		date = domain.FormatDate(uc.clock.Now())
	} else if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	path, err := uc.reports.Generate(date)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	uc.logger.Info("report", fmt.Sprintf("generated report for %s", date))
	return &GenerateReportOutput{Date: date, Path: path}, nil
}
