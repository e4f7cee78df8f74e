package services

import (
	"context"

	"eduportal/errors"
	"eduportal/models"
	"eduportal/utils"
)

type courseStore interface {
	CreateCourse(ctx context.Context, c *models.Course) (int, error)
	GetCourseByID(ctx context.Context, id int) (*models.Course, error)
	ListCourses(ctx context.Context, f *models.CourseFilter) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id int, upd *models.CourseUpdate) error
	DeleteCourse(ctx context.Context, id int) error
}

// CourseService manages the tutoring course catalog.
type CourseService struct {
	store courseStore
}

func NewCourseService(store courseStore) *CourseService {
	return &CourseService{store: store}
}

func (s *CourseService) Create(ctx context.Context, c *models.Course, createdBy int) (*models.Course, error) {
	if err := utils.ValidateRequired("title", c.Title, utils.MaxSchoolLength); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}
	if c.Price != "" {
		price, err := utils.NormalizeAmount(c.Price)
		if err != nil {
			return nil, errors.E(errors.Invalid, "invalid price", err)
		}
		c.Price = price
	}
	c.CreatedBy = createdBy
	id, err := s.store.CreateCourse(ctx, c)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating course", err)
	}
	return s.GetByID(ctx, id)
}

func (s *CourseService) GetByID(ctx context.Context, id int) (*models.Course, error) {
	c, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading course", err)
	}
	if c == nil {
		return nil, errors.E(errors.NotFound, "course not found")
	}
	return c, nil
}

func (s *CourseService) List(ctx context.Context, f *models.CourseFilter) ([]models.Course, error) {
	items, err := s.store.ListCourses(ctx, f)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing courses", err)
	}
	return items, nil
}

func (s *CourseService) Update(ctx context.Context, id int, upd *models.CourseUpdate) (*models.Course, error) {
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
	if err := s.store.UpdateCourse(ctx, id, upd); err != nil {
		return nil, errors.E(errors.Internal, "error updating course", err)
	}
	return s.GetByID(ctx, id)
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return errors.E(errors.Internal, "error deleting course", err)
	}
	return nil
}
