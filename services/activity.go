package services

import (
	"context"

	"eduportal/errors"
	"eduportal/models"
	"eduportal/utils"
)

type activityStore interface {
	CreateActivity(ctx context.Context, a *models.Activity) (int, error)
	GetActivityByID(ctx context.Context, id int) (*models.Activity, error)
	ListActivities(ctx context.Context, activeOnly bool) ([]models.Activity, error)
	UpdateActivity(ctx context.Context, id int, upd *models.ActivityUpdate) error
}

// ActivityService manages the bookable activities admins publish.
type ActivityService struct {
	store activityStore
}

func NewActivityService(store activityStore) *ActivityService {
	return &ActivityService{store: store}
}

// CreateActivityInput is the admin creation payload.
type CreateActivityInput struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Price         string `json:"price"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
	ContactWechat string `json:"contact_wechat,omitempty"`
	Itinerary     string `json:"itinerary,omitempty"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// Create publishes a new activity. createdBy is the acting admin's id.
func (s *ActivityService) Create(ctx context.Context, in *CreateActivityInput, createdBy int) (*models.Activity, error) {
	if err := utils.ValidateRequired("title", in.Title, utils.MaxSchoolLength); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}
	price, err := utils.NormalizeAmount(in.Price)
	if err != nil {
		return nil, errors.E(errors.Invalid, "invalid price", err)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	activity := &models.Activity{
		Title:         in.Title,
		Description:   in.Description,
		Price:         price,
		ContactPerson: in.ContactPerson,
		ContactPhone:  in.ContactPhone,
		ContactWechat: in.ContactWechat,
		Itinerary:     in.Itinerary,
		IsActive:      active,
		CreatedBy:     createdBy,
	}
	id, err := s.store.CreateActivity(ctx, activity)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating activity", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the activity or NotFound.
func (s *ActivityService) GetByID(ctx context.Context, id int) (*models.Activity, error) {
	activity, err := s.store.GetActivityByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading activity", err)
	}
	if activity == nil {
		return nil, errors.E(errors.NotFound, "activity not found")
	}
	return activity, nil
}

// List returns activities. The public listing only sees active ones; admins
// pass activeOnly=false to see everything.
func (s *ActivityService) List(ctx context.Context, activeOnly bool) ([]models.Activity, error) {
	activities, err := s.store.ListActivities(ctx, activeOnly)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing activities", err)
	}
	return activities, nil
}

// Update applies the non-nil fields. An edited price only affects future
// registrations; existing ones keep their copied amount.
func (s *ActivityService) Update(ctx context.Context, id int, upd *models.ActivityUpdate) (*models.Activity, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if upd.Price != nil {
		price, err := utils.NormalizeAmount(*upd.Price)
		if err != nil {
			return nil, errors.E(errors.Invalid, "invalid price", err)
		}
		upd.Price = &price
	}
	if err := s.store.UpdateActivity(ctx, id, upd); err != nil {
		return nil, errors.E(errors.Internal, "error updating activity", err)
	}
	return s.GetByID(ctx, id)
}
