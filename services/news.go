package services

import (
	"context"
	"time"

	"eduportal/errors"
	"eduportal/models"
	"eduportal/utils"
)

type newsStore interface {
	CreateNews(ctx context.Context, n *models.News) (int, error)
	GetNewsByID(ctx context.Context, id int) (*models.News, error)
	ListNews(ctx context.Context, f *models.NewsFilter) ([]models.News, error)
	UpdateNews(ctx context.Context, id int, upd *models.NewsUpdate) error
	DeleteNews(ctx context.Context, id int) error
	GetNewsCategories(ctx context.Context) ([]string, error)
}

// NewsService manages the portal's news feed.
type NewsService struct {
	store newsStore
}

func NewNewsService(store newsStore) *NewsService {
	return &NewsService{store: store}
}

// CreateNewsInput is the admin creation payload.
type CreateNewsInput struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Author      string     `json:"author,omitempty"`
	Source      string     `json:"source,omitempty"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

func (s *NewsService) Create(ctx context.Context, in *CreateNewsInput, createdBy int) (*models.News, error) {
	if err := utils.ValidateRequired("title", in.Title, utils.MaxSchoolLength); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}
	if in.Content == "" {
		return nil, errors.E(errors.Invalid, "content is required")
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	publishDate := time.Now()
	if in.PublishDate != nil {
		publishDate = *in.PublishDate
	}
	article := &models.News{
		Title:       in.Title,
		Summary:     in.Summary,
		Content:     in.Content,
		Category:    in.Category,
		CoverImage:  in.CoverImage,
		Author:      in.Author,
		Source:      in.Source,
		PublishDate: publishDate,
		IsPublished: published,
		CreatedBy:   createdBy,
	}
	id, err := s.store.CreateNews(ctx, article)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating news", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the article or NotFound. The store bumps the view counter.
func (s *NewsService) GetByID(ctx context.Context, id int) (*models.News, error) {
	article, err := s.store.GetNewsByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading news", err)
	}
	if article == nil {
		return nil, errors.E(errors.NotFound, "news not found")
	}
	return article, nil
}

func (s *NewsService) List(ctx context.Context, f *models.NewsFilter) ([]models.News, error) {
	items, err := s.store.ListNews(ctx, f)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing news", err)
	}
	return items, nil
}

func (s *NewsService) Update(ctx context.Context, id int, upd *models.NewsUpdate) (*models.News, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.UpdateNews(ctx, id, upd); err != nil {
		return nil, errors.E(errors.Internal, "error updating news", err)
	}
	return s.GetByID(ctx, id)
}

func (s *NewsService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteNews(ctx, id); err != nil {
		return errors.E(errors.Internal, "error deleting news", err)
	}
	return nil
}

func (s *NewsService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.GetNewsCategories(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing news categories", err)
	}
	return categories, nil
}
