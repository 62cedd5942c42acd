package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/config"
	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	"github.com/smallbiznis/gstbooks/internal/gst"
	itemdomain "github.com/smallbiznis/gstbooks/internal/item/domain"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/smallbiznis/gstbooks/pkg/db"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tolerance bounds the accepted drift between submitted and recomputed
// money fields. Anything larger than a rounding artifact is rejected.
var tolerance = decimal.RequireFromString("0.01")

type Params struct {
	fx.In

	Config      config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
}

type Service struct {
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	customerSvc customerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		cfg:         p.Config,
		db:          p.DB,
		log:         p.Log.Named("sale.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSaleRequest) (domain.Sale, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Sale{}, domain.ErrInvalidOrganization
	}

	if req.Kind != domain.SaleKindGST && req.Kind != domain.SaleKindCash {
		return domain.Sale{}, domain.ErrInvalidKind
	}
	invoiceNumber := strings.TrimSpace(req.InvoiceNumber)
	if invoiceNumber == "" {
		return domain.Sale{}, domain.ErrInvalidInvoiceNumber
	}
	if req.InvoiceDate.IsZero() {
		return domain.Sale{}, domain.ErrInvalidInvoiceDate
	}
	if req.PaymentMode != gst.PaymentModeFull && req.PaymentMode != gst.PaymentModePartial {
		return domain.Sale{}, domain.ErrInvalidPaymentMode
	}
	if len(req.Items) == 0 {
		return domain.Sale{}, domain.ErrEmptyItems
	}

	lines, err := s.verifyLines(req.Items)
	if err != nil {
		return domain.Sale{}, err
	}
	totals, err := s.verifyTotals(lines, req.PaymentMode, req.Totals)
	if err != nil {
		return domain.Sale{}, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		Kind:          req.Kind,
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   req.InvoiceDate.UTC(),
		PaymentMode:   req.PaymentMode,
		Status:        domain.SaleStatusOpen,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch req.Kind {
	case domain.SaleKindGST:
		customer, err := s.customerSvc.GetByID(ctx, customerdomain.GetCustomerRequest{ID: req.CustomerID})
		if err != nil {
			return domain.Sale{}, domain.ErrInvalidCustomer
		}
		customerID := customer.ID
		sale.CustomerID = &customerID
		sale.CustomerName = customer.Name
		sale.CustomerGSTIN = customer.GSTIN
		sale.PlaceOfSupply = customer.PlaceOfSupply
		sale.SplitMode = gst.DetermineTaxSplit(s.cfg.HomeState, customer.PlaceOfSupply)
	case domain.SaleKindCash:
		name := strings.TrimSpace(req.CustomerName)
		if name == "" {
			return domain.Sale{}, domain.ErrInvalidCustomer
		}
		sale.CustomerName = name
		sale.PlaceOfSupply = s.cfg.HomeState
		sale.SplitMode = gst.SplitModeIntra
	}

	applyTotals(&sale, totals)
	items := s.buildItems(&sale, req.Items, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &sale); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Sale{}, domain.ErrDuplicateInvoiceNumber
		}
		return domain.Sale{}, err
	}

	s.log.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("kind", string(sale.Kind)),
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.String("total", sale.Total.String()),
	)

	sale.Items = items
	return sale, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSaleRequest) (domain.Sale, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Sale{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Sale{}, err
	}

	sale, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	if sale.Status == domain.SaleStatusPaid {
		return domain.Sale{}, domain.ErrAlreadyPaid
	}

	invoiceNumber := strings.TrimSpace(req.InvoiceNumber)
	if invoiceNumber == "" {
		return domain.Sale{}, domain.ErrInvalidInvoiceNumber
	}
	if req.InvoiceDate.IsZero() {
		return domain.Sale{}, domain.ErrInvalidInvoiceDate
	}
	if req.PaymentMode != gst.PaymentModeFull && req.PaymentMode != gst.PaymentModePartial {
		return domain.Sale{}, domain.ErrInvalidPaymentMode
	}
	if len(req.Items) == 0 {
		return domain.Sale{}, domain.ErrEmptyItems
	}

	lines, err := s.verifyLines(req.Items)
	if err != nil {
		return domain.Sale{}, err
	}
	totals, err := s.verifyTotals(lines, req.PaymentMode, req.Totals)
	if err != nil {
		return domain.Sale{}, err
	}

	now := time.Now().UTC()
	sale.InvoiceNumber = invoiceNumber
	sale.InvoiceDate = req.InvoiceDate.UTC()
	sale.PaymentMode = req.PaymentMode
	sale.UpdatedAt = now
	applyTotals(sale, totals)
	items := s.buildItems(sale, req.Items, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, sale); err != nil {
			return err
		}
		if err := s.repo.DeleteItems(ctx, tx, orgID, sale.ID); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Sale{}, domain.ErrDuplicateInvoiceNumber
		}
		return domain.Sale{}, err
	}

	sale.Items = items
	return *sale, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSaleRequest) (domain.ListSaleResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListSaleResponse{}, domain.ErrInvalidOrganization
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	sales, err := s.repo.List(ctx, s.db, orgID, domain.ListSaleFilter{
		Kind:          req.Kind,
		Status:        req.Status,
		CustomerID:    strings.TrimSpace(req.CustomerID),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListSaleResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(sales, pageSize, func(sale *domain.Sale) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        sale.ID.String(),
			CreatedAt: sale.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(sales) > int(pageSize) {
		sales = sales[:pageSize]
	}

	out := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		out = append(out, *sale)
	}

	resp := domain.ListSaleResponse{Sales: out}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetSaleRequest) (domain.Sale, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Sale{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Sale{}, err
	}

	sale, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}

	items, err := s.repo.FindItems(ctx, s.db, orgID, sale.ID)
	if err != nil {
		return domain.Sale{}, err
	}
	sale.Items = items
	return *sale, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetSaleRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	sale, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteItems(ctx, tx, orgID, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, orgID, id)
	})
}

func (s *Service) MarkPaid(ctx context.Context, req domain.GetSaleRequest) (domain.Sale, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Sale{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Sale{}, err
	}

	sale, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	if sale.Status == domain.SaleStatusPaid {
		return domain.Sale{}, domain.ErrAlreadyPaid
	}

	sale.Status = domain.SaleStatusPaid
	sale.BalanceDue = decimal.Zero.Round(2)
	sale.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, sale); err != nil {
		return domain.Sale{}, err
	}
	return *sale, nil
}

// verifyLines checks each submitted line's derived fields against the
// calculator's arithmetic. The line's own GST amount is accepted as
// submitted (catalog-sourced on first add, slab-derived after a quantity
// change) but the taxable amount, splits and line total must agree with it.
func (s *Service) verifyLines(inputs []domain.SaleLineInput) ([]gst.LineItem, error) {
	lines := make([]gst.LineItem, 0, len(inputs))
	for _, input := range inputs {
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if !itemdomain.GSTSlabs[input.GSTSlab] {
			return nil, domain.ErrInvalidGSTSlab
		}

		expectedTaxable := input.Rate.Mul(decimal.NewFromInt(input.Quantity)).Round(2)
		expectedCGST := input.GSTAmount.Div(decimal.NewFromInt(2)).Round(2)
		expectedTotal := input.TaxableAmount.Add(input.GSTAmount).Round(2)
		if !withinTolerance(input.TaxableAmount, expectedTaxable) ||
			!withinTolerance(input.CGST, expectedCGST) ||
			!withinTolerance(input.SGST, expectedCGST) ||
			!withinTolerance(input.IGST, input.GSTAmount) ||
			!withinTolerance(input.Total, expectedTotal) {
			return nil, domain.ErrLineMismatch
		}

		itemID, err := snowflake.ParseString(strings.TrimSpace(input.ItemID))
		if err != nil || itemID == 0 {
			return nil, domain.ErrInvalidID
		}

		lines = append(lines, gst.LineItem{
			ItemID:        itemID,
			Type:          input.Type,
			HSNCode:       input.HSNCode,
			Description:   input.Description,
			Rate:          input.Rate,
			Quantity:      input.Quantity,
			GSTSlab:       input.GSTSlab,
			TaxableAmount: input.TaxableAmount.Round(2),
			GSTAmount:     input.GSTAmount.Round(2),
			CGST:          input.CGST.Round(2),
			SGST:          input.SGST.Round(2),
			IGST:          input.IGST.Round(2),
			Total:         input.Total.Round(2),
		})
	}
	return lines, nil
}

// verifyTotals re-runs the shared calculator over the verified lines and
// rejects the submission when any money field drifts beyond tolerance.
// The submitted rounding adjustment is honored verbatim (it may be a
// manual override), but the resulting total still has to reconcile.
func (s *Service) verifyTotals(lines []gst.LineItem, mode gst.PaymentMode, submitted domain.SaleTotalsInput) (gst.Totals, error) {
	manual := submitted.OtherAdjustments.Round(2)
	totals := gst.Recompute(lines, gst.Adjustments{
		ShippingCharges:  submitted.ShippingCharges,
		Discount:         submitted.Discount,
		ManualAdjustment: &manual,
		PaymentMode:      mode,
		AdvanceAmount:    submitted.AdvanceAmount,
	})

	checks := []struct {
		got, want decimal.Decimal
	}{
		{submitted.TaxableAmount, totals.TaxableAmount},
		{submitted.GSTAmount, totals.GSTAmount},
		{submitted.CGST, totals.CGST},
		{submitted.SGST, totals.SGST},
		{submitted.IGST, totals.IGST},
		{submitted.Total, totals.Total},
		{submitted.AdvanceAmount, totals.AdvanceAmount},
		{submitted.BalanceDue, totals.BalanceDue},
	}
	for _, check := range checks {
		if !withinTolerance(check.got, check.want) {
			s.log.Warn("totals mismatch",
				zap.String("submitted", check.got.String()),
				zap.String("recomputed", check.want.String()),
			)
			return gst.Totals{}, domain.ErrTotalsMismatch
		}
	}
	return totals, nil
}

func (s *Service) buildItems(sale *domain.Sale, inputs []domain.SaleLineInput, now time.Time) []domain.SaleItem {
	items := make([]domain.SaleItem, 0, len(inputs))
	for _, input := range inputs {
		itemID, _ := snowflake.ParseString(strings.TrimSpace(input.ItemID))
		items = append(items, domain.SaleItem{
			ID:            s.genID.Generate(),
			OrgID:         sale.OrgID,
			SaleID:        sale.ID,
			ItemID:        itemID,
			Type:          input.Type,
			HSNCode:       input.HSNCode,
			Description:   input.Description,
			Rate:          input.Rate.Round(2),
			Quantity:      input.Quantity,
			GSTSlab:       input.GSTSlab,
			TaxableAmount: input.TaxableAmount.Round(2),
			GSTAmount:     input.GSTAmount.Round(2),
			CGST:          input.CGST.Round(2),
			SGST:          input.SGST.Round(2),
			IGST:          input.IGST.Round(2),
			Total:         input.Total.Round(2),
			CreatedAt:     now,
		})
	}
	return items
}

func applyTotals(sale *domain.Sale, totals gst.Totals) {
	sale.TaxableAmount = totals.TaxableAmount
	sale.GSTAmount = totals.GSTAmount
	sale.CGST = totals.CGST
	sale.SGST = totals.SGST
	sale.IGST = totals.IGST
	sale.ShippingCharges = totals.ShippingCharges
	sale.Discount = totals.Discount
	sale.OtherAdjustments = totals.OtherAdjustments
	sale.Total = totals.Total
	sale.AdvanceAmount = totals.AdvanceAmount
	sale.BalanceDue = totals.BalanceDue
}

func withinTolerance(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(tolerance)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
