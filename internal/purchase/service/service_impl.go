package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/smallbiznis/gstbooks/internal/purchase/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tolerance = decimal.RequireFromString("0.01")

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
		log:   p.Log.Named("purchase.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePurchaseRequest) (domain.Purchase, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Purchase{}, domain.ErrInvalidOrganization
	}

	supplier := strings.TrimSpace(req.SupplierName)
	if supplier == "" {
		return domain.Purchase{}, domain.ErrInvalidSupplier
	}
	billNumber := strings.TrimSpace(req.BillNumber)
	if billNumber == "" {
		return domain.Purchase{}, domain.ErrInvalidBillNumber
	}
	if req.BillDate.IsZero() {
		return domain.Purchase{}, domain.ErrInvalidBillDate
	}
	if req.PaymentMode != gst.PaymentModeFull && req.PaymentMode != gst.PaymentModePartial {
		return domain.Purchase{}, domain.ErrInvalidPaymentMode
	}
	if err := checkAmounts(req.TaxableAmount, req.GSTAmount, req.Total); err != nil {
		return domain.Purchase{}, err
	}

	now := time.Now().UTC()
	purchase := domain.Purchase{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		SupplierName:  supplier,
		SupplierGSTIN: strings.ToUpper(strings.TrimSpace(req.SupplierGSTIN)),
		BillNumber:    billNumber,
		BillDate:      req.BillDate.UTC(),
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		TaxableAmount: req.TaxableAmount.Round(2),
		GSTAmount:     req.GSTAmount.Round(2),
		Total:         req.Total.Round(2),
		PaymentMode:   req.PaymentMode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &purchase); err != nil {
		return domain.Purchase{}, err
	}
	return purchase, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPurchaseRequest) (domain.ListPurchaseResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListPurchaseResponse{}, domain.ErrInvalidOrganization
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, domain.ListPurchaseFilter{
		SupplierName: strings.TrimSpace(req.SupplierName),
		Category:     strings.TrimSpace(req.Category),
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		SortBy:       req.SortBy,
		OrderBy:      req.OrderBy,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListPurchaseResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(purchase *domain.Purchase) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        purchase.ID.String(),
			CreatedAt: purchase.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	purchases := make([]domain.Purchase, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		purchases = append(purchases, *item)
	}

	resp := domain.ListPurchaseResponse{Purchases: purchases}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPurchaseRequest) (domain.Purchase, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Purchase{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Purchase{}, err
	}

	purchase, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}
	return *purchase, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePurchaseRequest) (domain.Purchase, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Purchase{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Purchase{}, err
	}

	purchase, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}

	if req.SupplierName != nil {
		supplier := strings.TrimSpace(*req.SupplierName)
		if supplier == "" {
			return domain.Purchase{}, domain.ErrInvalidSupplier
		}
		purchase.SupplierName = supplier
	}
	if req.SupplierGSTIN != nil {
		purchase.SupplierGSTIN = strings.ToUpper(strings.TrimSpace(*req.SupplierGSTIN))
	}
	if req.BillNumber != nil {
		billNumber := strings.TrimSpace(*req.BillNumber)
		if billNumber == "" {
			return domain.Purchase{}, domain.ErrInvalidBillNumber
		}
		purchase.BillNumber = billNumber
	}
	if req.BillDate != nil {
		if req.BillDate.IsZero() {
			return domain.Purchase{}, domain.ErrInvalidBillDate
		}
		purchase.BillDate = req.BillDate.UTC()
	}
	if req.Category != nil {
		purchase.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		purchase.Description = strings.TrimSpace(*req.Description)
	}
	if req.TaxableAmount != nil {
		purchase.TaxableAmount = req.TaxableAmount.Round(2)
	}
	if req.GSTAmount != nil {
		purchase.GSTAmount = req.GSTAmount.Round(2)
	}
	if req.Total != nil {
		purchase.Total = req.Total.Round(2)
	}
	if req.PaymentMode != nil {
		if *req.PaymentMode != gst.PaymentModeFull && *req.PaymentMode != gst.PaymentModePartial {
			return domain.Purchase{}, domain.ErrInvalidPaymentMode
		}
		purchase.PaymentMode = *req.PaymentMode
	}
	if err := checkAmounts(purchase.TaxableAmount, purchase.GSTAmount, purchase.Total); err != nil {
		return domain.Purchase{}, err
	}
	purchase.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, purchase); err != nil {
		return domain.Purchase{}, err
	}
	return *purchase, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetPurchaseRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	purchase, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, id)
}

// checkAmounts requires non-negative figures that add up: the total must
// equal taxable + gst within rounding tolerance.
func checkAmounts(taxable, gstAmount, total decimal.Decimal) error {
	if taxable.IsNegative() || gstAmount.IsNegative() || total.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if total.Sub(taxable.Add(gstAmount)).Abs().GreaterThan(tolerance) {
		return domain.ErrInvalidAmount
	}
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
