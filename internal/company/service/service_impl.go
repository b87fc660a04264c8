package service

import (
	"context"
	"strings"
	"time"

	"github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCompanyRequest) (listing.Result[domain.Company], error) {
	return s.repo.List(ctx, s.db, domain.ListCompanyFilter{
		Search:   req.Search,
		Industry: req.Industry,
	}, req.Page)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		Industry:     strings.TrimSpace(req.Industry),
		Website:      strings.TrimSpace(req.Website),
		ExternalID:   strings.TrimSpace(req.ExternalID),
		CustomFields: customFields(req.CustomFields),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) (domain.Company, error) {
	if id == 0 {
		return domain.Company{}, domain.ErrInvalidID
	}
	values, err := updateValues(req)
	if err != nil {
		return domain.Company{}, err
	}

	affected, err := s.repo.Update(ctx, s.db, id, values)
	if err != nil {
		return domain.Company{}, err
	}
	if affected == 0 {
		return domain.Company{}, domain.ErrNotFound
	}

	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	affected, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrEmptyIDSet
	}
	return s.repo.DeleteMany(ctx, s.db, ids)
}

func (s *Service) BulkUpdate(ctx context.Context, ids []int64, req domain.UpdateCompanyRequest) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrEmptyIDSet
	}
	values, err := updateValues(req)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateMany(ctx, s.db, ids, values)
}

func updateValues(req domain.UpdateCompanyRequest) (map[string]any, error) {
	values := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		values["name"] = name
	}
	if req.Industry != nil {
		values["industry"] = strings.TrimSpace(*req.Industry)
	}
	if req.Website != nil {
		values["website"] = strings.TrimSpace(*req.Website)
	}
	if req.ExternalID != nil {
		values["external_id"] = strings.TrimSpace(*req.ExternalID)
	}
	if req.CustomFields != nil {
		values["custom_fields"] = datatypes.JSONMap(req.CustomFields)
	}
	if len(values) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	values["updated_at"] = time.Now().UTC()
	return values, nil
}

func customFields(fields map[string]any) datatypes.JSONMap {
	if fields == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(fields)
}
