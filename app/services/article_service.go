package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
)

const (
	msgArticleNotFound  = "مقاله یافت نشد"
	msgArticleSlugTaken = "این نامک قبلا برای مقاله دیگری استفاده شده است"
)

type ArticleInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	Order       int    `json:"order"`
}

type ArticleService struct {
	articles repositories.ArticleRepositoryImpl
}

func NewArticleService(articles repositories.ArticleRepositoryImpl) *ArticleService {
	return &ArticleService{articles: articles}
}

func (s *ArticleService) List(ctx context.Context, activeOnly bool) ([]models.Article, error) {
	articles, err := s.articles.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, helpers.NewNotFound(msgArticleNotFound)
	}
	return article, nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, helpers.NewNotFound(msgArticleNotFound)
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*models.Article, error) {
	article := &models.Article{IsActive: true}
	if err := s.apply(ctx, article, in, ""); err != nil {
		return nil, err
	}
	if err := s.articles.Create(ctx, article); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgArticleSlugTaken)
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, in ArticleInput) (*models.Article, error) {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, article, in, id); err != nil {
		return nil, err
	}
	if err := s.articles.Update(ctx, article); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgArticleSlugTaken)
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.articles.Delete(ctx, id)
}

func (s *ArticleService) apply(ctx context.Context, article *models.Article, in ArticleInput, excludeID string) error {
	slug := helpers.GenerateSlug(in.Slug)
	if slug == "" {
		slug = helpers.GenerateSlug(in.Title)
	}
	if slug == "" {
		return helpers.NewBadRequest(msgInvalidSlug)
	}
	taken, err := s.articles.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return helpers.NewBadRequest(msgArticleSlugTaken)
	}

	article.Title = strings.TrimSpace(in.Title)
	article.Slug = slug
	article.Description = in.Description
	article.DisplayOrder = in.Order
	if in.IsActive != nil {
		article.IsActive = *in.IsActive
	}
	return nil
}
