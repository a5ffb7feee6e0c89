package service

import (
	"context"
	"fmt"
	"time"

	"github.com/torebek/gigledger/internal/config"
	"github.com/torebek/gigledger/internal/model"
	"github.com/torebek/gigledger/internal/repository"
)

type ReportGenerator interface {
	Generate(report model.ClientReport) ([]byte, error)
}

// AnalyticsService ranks professions and clients by revenue from paid jobs
// in a time window. A window with start after end is empty, not an error.
type AnalyticsService struct {
	analytics    *repository.AnalyticsRepository
	excel        ReportGenerator
	pdf          ReportGenerator
	defaultLimit int
}

type ReportResult struct {
	FileName string
	Content  []byte
}

func NewAnalyticsService(analytics *repository.AnalyticsRepository, excel, pdf ReportGenerator, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		analytics:    analytics,
		excel:        excel,
		pdf:          pdf,
		defaultLimit: cfg.Ledger.BestClientsDefault,
	}
}

func (s *AnalyticsService) BestProfession(ctx context.Context, start, end time.Time) (string, error) {
	if start.IsZero() || end.IsZero() {
		return "", fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	rankings, err := s.analytics.ProfessionRevenue(ctx, start, end)
	if err != nil {
		return "", err
	}
	if len(rankings) == 0 {
		return "", ErrNotFound
	}
	return rankings[0].Profession, nil
}

func (s *AnalyticsService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientRanking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}
	return s.analytics.ClientRevenue(ctx, start, end, limit)
}

func (s *AnalyticsService) BestClientsReport(ctx context.Context, start, end time.Time, limit int) (*ReportResult, error) {
	return s.exportBestClients(ctx, start, end, limit, s.excel, "xlsx")
}

func (s *AnalyticsService) BestClientsReportPDF(ctx context.Context, start, end time.Time, limit int) (*ReportResult, error) {
	return s.exportBestClients(ctx, start, end, limit, s.pdf, "pdf")
}

func (s *AnalyticsService) exportBestClients(ctx context.Context, start, end time.Time, limit int, gen ReportGenerator, ext string) (*ReportResult, error) {
	clients, err := s.BestClients(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}

	report := model.ClientReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Clients:     clients,
	}
	content, err := gen.Generate(report)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("best-clients-%s-%s.%s",
		start.Format("20060102"), end.Format("20060102"), ext)
	return &ReportResult{FileName: fileName, Content: content}, nil
}
