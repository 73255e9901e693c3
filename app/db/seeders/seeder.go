package seeders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farsishop/storefront/app/db/fakers"
	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/rs/zerolog"
)

const (
	demoRootCategories    = 4
	demoChildCategories   = 2
	demoProductsPerLeaf   = 5
	demoArticles          = 3
	demoSliders           = 3
	defaultAdminName      = "مدیر فروشگاه"
	minAdminPasswordRunes = 8
)

// SeedAdmin creates the admin account, or on reseed only resets its role and
// password so the rest of the row survives.
func SeedAdmin(ctx context.Context, users repositories.UserRepositoryImpl, email, password string, logger zerolog.Logger) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if len([]rune(password)) < minAdminPasswordRunes {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", minAdminPasswordRunes)
	}

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		admin := &models.User{
			Name:     defaultAdminName,
			Email:    email,
			Password: password,
			Role:     models.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("failed to create admin %s: %w", email, err)
		}
		logger.Info().Str("email", email).Msg("admin user created")
		return admin, nil
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	existing.Role = models.RoleAdmin
	existing.Password = hash
	if err := users.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update admin %s: %w", email, err)
	}
	logger.Info().Str("email", email).Msg("admin user updated")
	return existing, nil
}

// SeedDemo fills an empty catalog with fake categories, products, attributes,
// articles and sliders.
func SeedDemo(ctx context.Context, repos *repositories.Registry, logger zerolog.Logger) error {
	count, err := repos.Categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn().Int64("categories", count).Msg("catalog is not empty, skipping demo data")
		return nil
	}

	var leaves []*models.Category
	for i := 0; i < demoRootCategories; i++ {
		root := fakers.CategoryFaker(nil, i)
		if err := repos.Categories.Create(ctx, root); err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
		if err := repos.Attributes.Create(ctx, fakers.AttributeFaker(root)); err != nil {
			return fmt.Errorf("failed to seed attribute: %w", err)
		}

		for j := 0; j < demoChildCategories; j++ {
			child := fakers.CategoryFaker(root, j)
			if err := repos.Categories.Create(ctx, child); err != nil {
				return fmt.Errorf("failed to seed category: %w", err)
			}
			leaves = append(leaves, child)
		}
	}

	products := 0
	for _, leaf := range leaves {
		for k := 0; k < demoProductsPerLeaf; k++ {
			if err := repos.Products.Create(ctx, fakers.ProductFaker(leaf)); err != nil {
				return fmt.Errorf("failed to seed product: %w", err)
			}
			products++
		}
	}

	for i := 0; i < demoArticles; i++ {
		if err := repos.Articles.Create(ctx, fakers.ArticleFaker(i)); err != nil {
			return fmt.Errorf("failed to seed article: %w", err)
		}
	}
	for i := 0; i < demoSliders; i++ {
		if err := repos.Sliders.Create(ctx, fakers.SliderFaker(i)); err != nil {
			return fmt.Errorf("failed to seed slider: %w", err)
		}
	}

	logger.Info().
		Int("categories", demoRootCategories*(demoChildCategories+1)).
		Int("products", products).
		Msg("demo catalog seeded")
	return nil
}
