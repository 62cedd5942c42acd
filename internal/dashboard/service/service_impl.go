package service

import (
	"context"
	"time"

	"github.com/smallbiznis/gstbooks/internal/dashboard/domain"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topCustomerLimit = 5

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("dashboard.service"),
		repo: p.Repo,
	}
}

func (s *Service) Summary(ctx context.Context, req domain.SummaryRequest) (*domain.Summary, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	from, to, err := normalizeRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, s.db, orgID, from, to)
}

func (s *Service) Monthly(ctx context.Context, req domain.MonthlyRequest) (*domain.MonthlyResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	from, to, err := normalizeRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	months, err := s.repo.MonthlySeries(ctx, s.db, orgID, from, to)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.TopCustomers(ctx, s.db, orgID, from, to, topCustomerLimit)
	if err != nil {
		return nil, err
	}

	return &domain.MonthlyResponse{
		Months:       months,
		TopCustomers: customers,
	}, nil
}

// normalizeRange defaults to the current financial year (April to March)
// when no range is supplied.
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() && to.IsZero() {
		now := time.Now().UTC()
		year := now.Year()
		if now.Month() < time.April {
			year--
		}
		from = time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return from, to, nil
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return from.UTC(), to.UTC(), nil
}
