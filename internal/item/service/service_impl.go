package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/item/domain"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
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
		log:   p.Log.Named("item.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Item{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, domain.ErrInvalidName
	}
	if req.Type != gst.ItemTypeGoods && req.Type != gst.ItemTypeService {
		return domain.Item{}, domain.ErrInvalidType
	}
	if req.Rate.IsNegative() {
		return domain.Item{}, domain.ErrInvalidRate
	}
	if !domain.GSTSlabs[req.GSTSlab] {
		return domain.Item{}, domain.ErrInvalidGSTSlab
	}

	now := time.Now().UTC()
	item := domain.Item{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Type:      req.Type,
		HSNCode:   strings.TrimSpace(req.HSNCode),
		Rate:      req.Rate.Round(2),
		GSTSlab:   req.GSTSlab,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyUnitTax(&item)

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.Item{}, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListItemRequest) (domain.ListItemResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListItemResponse{}, domain.ErrInvalidOrganization
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, domain.ListItemFilter{
		Search: strings.TrimSpace(req.Search),
		Type:   req.Type,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListItemResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *domain.Item) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}

	resp := domain.ListItemResponse{Items: out}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetItemRequest) (domain.Item, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Item{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.Item, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Item{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Item{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.HSNCode != nil {
		item.HSNCode = strings.TrimSpace(*req.HSNCode)
	}
	if req.Rate != nil {
		if req.Rate.IsNegative() {
			return domain.Item{}, domain.ErrInvalidRate
		}
		item.Rate = req.Rate.Round(2)
	}
	if req.GSTSlab != nil {
		if !domain.GSTSlabs[*req.GSTSlab] {
			return domain.Item{}, domain.ErrInvalidGSTSlab
		}
		item.GSTSlab = *req.GSTSlab
	}
	applyUnitTax(item)
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Item{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetItemRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, id)
}

// applyUnitTax refreshes the precomputed per-unit tax columns from the
// item's rate and slab. The order-entry first-add path reads these as-is.
func applyUnitTax(item *domain.Item) {
	slab := decimal.NewFromInt(item.GSTSlab)
	item.GSTAmount = item.Rate.Mul(slab).Div(decimal.NewFromInt(100)).Round(2)
	item.CGST = item.GSTAmount.Div(decimal.NewFromInt(2)).Round(2)
	item.SGST = item.CGST
	item.IGST = item.GSTAmount
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
