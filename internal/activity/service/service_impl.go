package service

import (
	"context"
	"strings"
	"time"

	"github.com/brightsales/atlas/internal/activity/domain"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Repo            domain.Repository
	CompanyRepo     companydomain.Repository
	ContactRepo     contactdomain.Repository
	OpportunityRepo opportunitydomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	repo            domain.Repository
	companyRepo     companydomain.Repository
	contactRepo     contactdomain.Repository
	opportunityRepo opportunitydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("activity.service"),
		genID:           p.GenID,
		repo:            p.Repo,
		companyRepo:     p.CompanyRepo,
		contactRepo:     p.ContactRepo,
		opportunityRepo: p.OpportunityRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListActivityRequest) (listing.Result[domain.Activity], error) {
	return s.repo.List(ctx, s.db, domain.ListActivityFilter{
		Search:        req.Search,
		Type:          req.Type,
		CompanyID:     req.CompanyID,
		ContactID:     req.ContactID,
		OpportunityID: req.OpportunityID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}, req.Page)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	activity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}
	return activity, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateActivityRequest) (domain.Activity, error) {
	activityType := strings.TrimSpace(req.Type)
	if !domain.ValidType(activityType) {
		return domain.Activity{}, domain.ErrInvalidType
	}

	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return domain.Activity{}, err
	}
	if err := s.ensureContact(ctx, req.ContactID); err != nil {
		return domain.Activity{}, err
	}
	if err := s.ensureOpportunity(ctx, req.OpportunityID); err != nil {
		return domain.Activity{}, err
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	activity := domain.Activity{
		ID:            s.genID.Generate().Int64(),
		Type:          activityType,
		Details:       strings.TrimSpace(req.Details),
		OccurredAt:    occurredAt,
		CustomFields:  customFields(req.CustomFields),
		CompanyID:     req.CompanyID,
		ContactID:     req.ContactID,
		OpportunityID: req.OpportunityID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &activity); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateActivityRequest) (domain.Activity, error) {
	if id == 0 {
		return domain.Activity{}, domain.ErrInvalidID
	}
	values, err := s.updateValues(ctx, req)
	if err != nil {
		return domain.Activity{}, err
	}

	affected, err := s.repo.Update(ctx, s.db, id, values)
	if err != nil {
		return domain.Activity{}, err
	}
	if affected == 0 {
		return domain.Activity{}, domain.ErrNotFound
	}

	activity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Activity{}, err
	}
	if activity == nil {
		return domain.Activity{}, domain.ErrNotFound
	}
	return *activity, nil
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

func (s *Service) BulkUpdate(ctx context.Context, ids []int64, req domain.UpdateActivityRequest) (int64, error) {
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

func (s *Service) ensureOpportunity(ctx context.Context, opportunityID *int64) error {
	if opportunityID == nil {
		return nil
	}
	if *opportunityID == 0 {
		return domain.ErrInvalidOpportunity
	}
	ok, err := s.opportunityRepo.Exists(ctx, s.db, *opportunityID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOpportunity
	}
	return nil
}

func (s *Service) updateValues(ctx context.Context, req domain.UpdateActivityRequest) (map[string]any, error) {
	values := map[string]any{}
	if req.Type != nil {
		activityType := strings.TrimSpace(*req.Type)
		if !domain.ValidType(activityType) {
			return nil, domain.ErrInvalidType
		}
		values["type"] = activityType
	}
	if req.Details != nil {
		values["details"] = strings.TrimSpace(*req.Details)
	}
	if req.OccurredAt != nil {
		values["occurred_at"] = req.OccurredAt.UTC()
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
	if req.OpportunityID != nil {
		if err := s.ensureOpportunity(ctx, req.OpportunityID); err != nil {
			return nil, err
		}
		values["opportunity_id"] = *req.OpportunityID
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
