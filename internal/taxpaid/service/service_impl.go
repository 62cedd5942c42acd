package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/smallbiznis/gstbooks/internal/taxpaid/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("taxpaid.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTaxPaymentRequest) (*domain.TaxPayment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	period, err := normalizePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	challan := strings.TrimSpace(req.ChallanNumber)
	if challan == "" {
		return nil, domain.ErrInvalidChallanNumber
	}
	if req.PaidOn.IsZero() {
		return nil, domain.ErrInvalidPaidOn
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	payment := domain.TaxPayment{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		Period:        period,
		ChallanNumber: challan,
		PaidOn:        req.PaidOn.UTC(),
		Amount:        req.Amount.Round(2),
		Mode:          strings.TrimSpace(req.Mode),
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTaxPaymentRequest) (*domain.ListTaxPaymentResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	pageSize := int32(req.PageSize)
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(payment *domain.TaxPayment) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        payment.ID.String(),
			CreatedAt: payment.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	payments := make([]domain.TaxPayment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}

	resp := &domain.ListTaxPaymentResponse{Payments: payments}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.TaxPayment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	payment, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrTaxPaymentNotFound
	}
	return payment, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateTaxPaymentRequest) (*domain.TaxPayment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	payment, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrTaxPaymentNotFound
	}

	if req.Period != nil {
		period, err := normalizePeriod(*req.Period)
		if err != nil {
			return nil, err
		}
		payment.Period = period
	}
	if req.ChallanNumber != nil {
		challan := strings.TrimSpace(*req.ChallanNumber)
		if challan == "" {
			return nil, domain.ErrInvalidChallanNumber
		}
		payment.ChallanNumber = challan
	}
	if req.PaidOn != nil {
		if req.PaidOn.IsZero() {
			return nil, domain.ErrInvalidPaidOn
		}
		payment.PaidOn = req.PaidOn.UTC()
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return nil, domain.ErrInvalidAmount
		}
		payment.Amount = req.Amount.Round(2)
	}
	if req.Mode != nil {
		payment.Mode = strings.TrimSpace(*req.Mode)
	}
	if req.Notes != nil {
		payment.Notes = strings.TrimSpace(*req.Notes)
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	payment, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrTaxPaymentNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, id)
}

// normalizePeriod accepts a YYYY-MM filing period.
func normalizePeriod(value string) (string, error) {
	period := strings.TrimSpace(value)
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", domain.ErrInvalidPeriod
	}
	return period, nil
}
