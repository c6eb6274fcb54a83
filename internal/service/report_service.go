package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// ReportService builds tabular reports.
type ReportService struct {
	reports repository.ReportRepository
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// CompanyReport returns one page of active companies with their aggregates.
// The row and count queries run concurrently.
func (s *ReportService) CompanyReport(ctx context.Context, filter repository.ReportFilter, page domain.Page) (domain.PageResult[domain.CompanyReportRow], error) {
	var (
		rows  []domain.CompanyReportRow
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.reports.CompanyReport(gctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.reports.CountCompanyReport(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PageResult[domain.CompanyReportRow]{}, apperrors.MapError(err)
	}
	return domain.PageResult[domain.CompanyReportRow]{Items: rows, Info: domain.NewPageInfo(page, total)}, nil
}
