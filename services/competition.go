package services

import (
	"context"

	"eduportal/errors"
	"eduportal/models"
	"eduportal/utils"
)

type competitionStore interface {
	CreateCompetition(ctx context.Context, c *models.Competition) (int, error)
	GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error)
	ListCompetitions(ctx context.Context, f *models.CompetitionFilter) ([]models.Competition, error)
	UpdateCompetition(ctx context.Context, id int, upd *models.CompetitionUpdate) error
	DeleteCompetition(ctx context.Context, id int) error
	GetCompetitionCategories(ctx context.Context) ([]string, error)
}

// CompetitionService manages the competition directory.
type CompetitionService struct {
	store competitionStore
}

func NewCompetitionService(store competitionStore) *CompetitionService {
	return &CompetitionService{store: store}
}

func (s *CompetitionService) Create(ctx context.Context, c *models.Competition, createdBy int) (*models.Competition, error) {
	if err := utils.ValidateRequired("name", c.Name, utils.MaxSchoolLength); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}
	if c.Status == "" {
		c.Status = "upcoming"
	}
	c.CreatedBy = createdBy
	id, err := s.store.CreateCompetition(ctx, c)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating competition", err)
	}
	return s.GetByID(ctx, id)
}

func (s *CompetitionService) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	c, err := s.store.GetCompetitionByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading competition", err)
	}
	if c == nil {
		return nil, errors.E(errors.NotFound, "competition not found")
	}
	return c, nil
}

func (s *CompetitionService) List(ctx context.Context, f *models.CompetitionFilter) ([]models.Competition, error) {
	items, err := s.store.ListCompetitions(ctx, f)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing competitions", err)
	}
	return items, nil
}

func (s *CompetitionService) Update(ctx context.Context, id int, upd *models.CompetitionUpdate) (*models.Competition, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCompetition(ctx, id, upd); err != nil {
		return nil, errors.E(errors.Internal, "error updating competition", err)
	}
	return s.GetByID(ctx, id)
}

func (s *CompetitionService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteCompetition(ctx, id); err != nil {
		return errors.E(errors.Internal, "error deleting competition", err)
	}
	return nil
}

func (s *CompetitionService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.GetCompetitionCategories(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing competition categories", err)
	}
	return categories, nil
}
