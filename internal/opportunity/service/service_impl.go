package service

import (
	"context"
	"strings"
	"time"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/internal/opportunity/domain"
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
	ContactRepo contactdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	companyRepo companydomain.Repository
	contactRepo contactdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("opportunity.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		companyRepo: p.CompanyRepo,
		contactRepo: p.ContactRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListOpportunityRequest) (listing.Result[domain.Opportunity], error) {
	return s.repo.List(ctx, s.db, domain.ListOpportunityFilter{
		Search:    req.Search,
		Status:    req.Status,
		CompanyID: req.CompanyID,
		ContactID: req.ContactID,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}, req.Page)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	opportunity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if opportunity == nil {
		return nil, domain.ErrNotFound
	}
	return opportunity, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateOpportunityRequest) (domain.Opportunity, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Opportunity{}, domain.ErrInvalidTitle
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusProspect
	}
	if !domain.ValidStatus(status) {
		return domain.Opportunity{}, domain.ErrInvalidStatus
	}

	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return domain.Opportunity{}, err
	}
	if err := s.ensureContact(ctx, req.ContactID); err != nil {
		return domain.Opportunity{}, err
	}

	now := time.Now().UTC()
	opportunity := domain.Opportunity{
		ID:           s.genID.Generate().Int64(),
		Title:        title,
		Amount:       req.Amount,
		Status:       status,
		CloseDate:    req.CloseDate,
		ExternalID:   strings.TrimSpace(req.ExternalID),
		CustomFields: customFields(req.CustomFields),
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &opportunity); err != nil {
		return domain.Opportunity{}, err
	}
	return opportunity, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateOpportunityRequest) (domain.Opportunity, error) {
	if id == 0 {
		return domain.Opportunity{}, domain.ErrInvalidID
	}
	values, err := s.updateValues(ctx, req)
	if err != nil {
		return domain.Opportunity{}, err
	}

	affected, err := s.repo.Update(ctx, s.db, id, values)
	if err != nil {
		return domain.Opportunity{}, err
	}
	if affected == 0 {
		return domain.Opportunity{}, domain.ErrNotFound
	}

	opportunity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Opportunity{}, err
	}
	if opportunity == nil {
		return domain.Opportunity{}, domain.ErrNotFound
	}
	return *opportunity, nil
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

func (s *Service) BulkUpdate(ctx context.Context, ids []int64, req domain.UpdateOpportunityRequest) (int64, error) {
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

func (s *Service) ensureContact(ctx context.Context, contactID *int64) error {
	if contactID == nil {
		return nil
	}
	if *contactID == 0 {
		return domain.ErrInvalidContact
	}
	ok, err := s.contactRepo.Exists(ctx, s.db, *contactID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidContact
	}
	return nil
}

func (s *Service) updateValues(ctx context.Context, req domain.UpdateOpportunityRequest) (map[string]any, error) {
	values := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		values["title"] = title
	}
	if req.Amount != nil {
		values["amount"] = *req.Amount
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !domain.ValidStatus(status) {
			return nil, domain.ErrInvalidStatus
		}
		values["status"] = status
	}
	if req.CloseDate != nil {
		values["close_date"] = *req.CloseDate
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
	if req.ContactID != nil {
		if err := s.ensureContact(ctx, req.ContactID); err != nil {
			return nil, err
		}
		values["contact_id"] = *req.ContactID
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
