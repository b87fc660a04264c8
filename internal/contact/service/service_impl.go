package service

import (
	"context"
	"strings"
	"time"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CompanyRepo companydomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	companyRepo companydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("contact.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		companyRepo: p.CompanyRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListContactRequest) (listing.Result[domain.Contact], error) {
	return s.repo.List(ctx, s.db, domain.ListContactFilter{
		Search:    req.Search,
		Role:      req.Role,
		CompanyID: req.CompanyID,
	}, req.Page)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	contact, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateContactRequest) (domain.Contact, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.Contact{}, domain.ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return domain.Contact{}, domain.ErrInvalidLastName
	}
	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return domain.Contact{}, err
	}

	now := time.Now().UTC()
	contact := domain.Contact{
		ID:           s.genID.Generate().Int64(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         strings.TrimSpace(req.Role),
		ExternalID:   strings.TrimSpace(req.ExternalID),
		CustomFields: customFields(req.CustomFields),
		CompanyID:    req.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &contact); err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateContactRequest) (domain.Contact, error) {
	if id == 0 {
		return domain.Contact{}, domain.ErrInvalidID
	}
	values, err := s.updateValues(ctx, req)
	if err != nil {
		return domain.Contact{}, err
	}

	affected, err := s.repo.Update(ctx, s.db, id, values)
	if err != nil {
		return domain.Contact{}, err
	}
	if affected == 0 {
		return domain.Contact{}, domain.ErrNotFound
	}

	contact, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Contact{}, err
	}
	if contact == nil {
		return domain.Contact{}, domain.ErrNotFound
	}
	return *contact, nil
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

func (s *Service) BulkUpdate(ctx context.Context, ids []int64, req domain.UpdateContactRequest) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrEmptyIDSet
	}
	values, err := s.updateValues(ctx, req)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateMany(ctx, s.db, ids, values)
}

func (s *Service) ensureCompany(ctx context.Context, companyID int64) error {
	if companyID == 0 {
		return domain.ErrInvalidCompany
	}
	ok, err := s.companyRepo.Exists(ctx, s.db, companyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCompany
	}
	return nil
}

func (s *Service) updateValues(ctx context.Context, req domain.UpdateContactRequest) (map[string]any, error) {
	values := map[string]any{}
	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" {
			return nil, domain.ErrInvalidFirstName
		}
		values["first_name"] = firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if lastName == "" {
			return nil, domain.ErrInvalidLastName
		}
		values["last_name"] = lastName
	}
	if req.Email != nil {
		values["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		values["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		values["role"] = strings.TrimSpace(*req.Role)
	}
	if req.ExternalID != nil {
		values["external_id"] = strings.TrimSpace(*req.ExternalID)
	}
	if req.CustomFields != nil {
		values["custom_fields"] = datatypes.JSONMap(req.CustomFields)
	}
	if req.CompanyID != nil {
		if err := s.ensureCompany(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
		values["company_id"] = *req.CompanyID
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
