package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/utils/breadcrumb"
	"github.com/rs/zerolog"
)

const (
	msgCategoryNotFound      = "دسته‌بندی یافت نشد"
	msgParentNotFound        = "دسته‌بندی والد یافت نشد"
	msgCategorySlugTaken     = "این نامک قبلا برای دسته‌بندی دیگری استفاده شده است"
	msgInvalidSlug           = "نامک معتبر نیست"
	msgCategoryTooDeep       = "حداکثر عمق دسته‌بندی چهار سطح است"
	msgCategorySelfParent    = "دسته‌بندی نمی‌تواند والد خودش باشد"
	msgCategoryCircular      = "انتخاب این والد باعث ایجاد حلقه در درخت دسته‌بندی می‌شود"
	msgCategoryDescendantCap = "با این جابجایی عمق زیرمجموعه‌ها از چهار سطح بیشتر می‌شود"
	msgCategoryHasChildren   = "ابتدا زیرمجموعه‌های این دسته‌بندی را حذف کنید"
	msgCategoryHasProducts   = "این دسته‌بندی دارای محصول است و قابل حذف نیست"
	msgCategoryIDRequired    = "شناسه دسته‌بندی الزامی است"
)

const (
	defaultRelatedLimit = 8
	maxRelatedLimit     = 50
	ancestorWalkLimit   = models.MaxCategoryLevel + 2
)

type CategoryInput struct {
	Name               string  `json:"name" validate:"required,max=255"`
	Slug               string  `json:"slug" validate:"omitempty,max=255"`
	Description        string  `json:"description"`
	Image              string  `json:"image" validate:"omitempty,imageurl,max=500"`
	ParentID           *string `json:"parentId"`
	Order              int     `json:"order"`
	IsActive           *bool   `json:"isActive"`
	ShowOnHome         *bool   `json:"showOnHome"`
	ShowProductsOnHome *bool   `json:"showProductsOnHome"`
}

type CategoryDetail struct {
	*models.Category
	Breadcrumbs []breadcrumb.Breadcrumb `json:"breadcrumbs"`
}

type CategoryService struct {
	categories repositories.CategoryRepositoryImpl
	products   repositories.ProductRepositoryImpl
	logger     zerolog.Logger
}

func NewCategoryService(categories repositories.CategoryRepositoryImpl, products repositories.ProductRepositoryImpl, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		logger:     logger.With().Str("service", "category").Logger(),
	}
}

func (s *CategoryService) List(ctx context.Context, filter repositories.CategoryFilter) ([]models.Category, error) {
	categories, err := s.categories.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Tree returns the root categories with Children filled in recursively.
func (s *CategoryService) Tree(ctx context.Context) ([]models.Category, error) {
	all, err := s.categories.GetAll(ctx, repositories.CategoryFilter{})
	if err != nil {
		return nil, err
	}
	return buildTree(all), nil
}

func buildTree(all []models.Category) []models.Category {
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c.ID] = true
	}

	childrenOf := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range all {
		if c.ParentID == nil || !known[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
	}

	var attach func(nodes []models.Category, depth int) []models.Category
	attach = func(nodes []models.Category, depth int) []models.Category {
		for i := range nodes {
			nodes[i].Parent = nil
			if depth < ancestorWalkLimit {
				nodes[i].Children = attach(childrenOf[nodes[i].ID], depth+1)
			}
		}
		return nodes
	}

	if roots == nil {
		return []models.Category{}
	}
	return attach(roots, 0)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, helpers.NewNotFound(msgCategoryNotFound)
	}
	return category, nil
}

// GetBySlug returns the category with its breadcrumb trail and active children.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryDetail, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, helpers.NewNotFound(msgCategoryNotFound)
	}

	children, err := s.categories.GetChildren(ctx, category.ID, true)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []models.Category{}
	}

	trail := breadcrumb.FromCategory(category)
	category.Children = children
	return &CategoryDetail{Category: category, Breadcrumbs: trail}, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	slug, err := s.resolveSlug(ctx, in.Slug, in.Name, "")
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    true,
	}
	applyCategoryFlags(category, in)

	parent, err := s.resolveParent(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		if parent.Level >= models.MaxCategoryLevel {
			return nil, helpers.NewBadRequest(msgCategoryTooDeep)
		}
		category.ParentID = &parent.ID
		category.Level = parent.Level + 1
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgCategorySlugTaken)
		}
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Int("level", category.Level).Msg("category created")
	return category, nil
}

// Update replaces the category fields. A nil or empty parentId moves the
// category to the root. Descendant levels follow the new position.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil && *in.ParentID == id {
		return nil, helpers.NewBadRequest(msgCategorySelfParent)
	}

	slug, err := s.resolveSlug(ctx, in.Slug, in.Name, id)
	if err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	newLevel := 0
	var newParentID *string
	if parent != nil {
		if err := s.ensureNotDescendant(ctx, id, parent); err != nil {
			return nil, err
		}
		if parent.Level >= models.MaxCategoryLevel {
			return nil, helpers.NewBadRequest(msgCategoryTooDeep)
		}
		newLevel = parent.Level + 1
		newParentID = &parent.ID
	}

	descendants, err := s.descendants(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, d := range descendants {
		if newLevel+d.offset > models.MaxCategoryLevel {
			return nil, helpers.NewBadRequest(msgCategoryDescendantCap)
		}
	}

	levelChanged := category.Level != newLevel
	category.Name = strings.TrimSpace(in.Name)
	category.Slug = slug
	category.Description = in.Description
	category.Image = in.Image
	category.ParentID = newParentID
	category.Parent = nil
	category.Level = newLevel
	applyCategoryFlags(category, in)

	if err := s.categories.Update(ctx, category); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgCategorySlugTaken)
		}
		return nil, err
	}

	if levelChanged {
		for _, d := range descendants {
			if err := s.categories.UpdateLevel(ctx, d.id, newLevel+d.offset); err != nil {
				return nil, err
			}
		}
	}

	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return helpers.NewBadRequest(msgCategoryHasChildren)
	}

	products, err := s.categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return helpers.NewBadRequest(msgCategoryHasProducts)
	}

	return s.categories.Delete(ctx, id)
}

// RelatedProducts returns the newest products of the category, its parent
// and its active children.
func (s *CategoryService) RelatedProducts(ctx context.Context, categoryID string, limit int, excludeProductID string) ([]models.Product, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, helpers.NewBadRequest(msgCategoryIDRequired)
	}

	category, err := s.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	ids := []string{category.ID}
	if category.ParentID != nil {
		ids = append(ids, *category.ParentID)
	}

	children, err := s.categories.GetChildren(ctx, category.ID, true)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	limit = helpers.ClampLimit(limit, defaultRelatedLimit, maxRelatedLimit)
	products, err := s.products.GetByCategoryIDs(ctx, ids, limit, excludeProductID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *CategoryService) resolveSlug(ctx context.Context, raw, name, excludeID string) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		slug = helpers.GenerateSlug(name)
	} else {
		slug = helpers.GenerateSlug(slug)
	}
	if slug == "" {
		return "", helpers.NewBadRequest(msgInvalidSlug)
	}

	taken, err := s.categories.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", helpers.NewBadRequest(msgCategorySlugTaken)
	}
	return slug, nil
}

func (s *CategoryService) resolveParent(ctx context.Context, parentID *string) (*models.Category, error) {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		return nil, nil
	}
	parent, err := s.categories.GetByID(ctx, *parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, helpers.NewBadRequest(msgParentNotFound)
	}
	return parent, nil
}

// ensureNotDescendant walks up from parent and fails if it reaches id.
func (s *CategoryService) ensureNotDescendant(ctx context.Context, id string, parent *models.Category) error {
	current := parent
	for steps := 0; current != nil && steps < ancestorWalkLimit; steps++ {
		if current.ID == id {
			return helpers.NewBadRequest(msgCategoryCircular)
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := s.categories.GetByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

type descendant struct {
	id     string
	offset int
}

// descendants lists every category below id with its depth relative to id.
func (s *CategoryService) descendants(ctx context.Context, id string) ([]descendant, error) {
	var out []descendant
	seen := map[string]bool{id: true}
	frontier := []descendant{{id: id}}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		if current.offset > ancestorWalkLimit {
			break
		}

		children, err := s.categories.GetChildren(ctx, current.id, false)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			d := descendant{id: child.ID, offset: current.offset + 1}
			out = append(out, d)
			frontier = append(frontier, d)
		}
	}
	return out, nil
}

func applyCategoryFlags(category *models.Category, in CategoryInput) {
	category.DisplayOrder = in.Order
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.ShowOnHome != nil {
		category.ShowOnHome = *in.ShowOnHome
	}
	if in.ShowProductsOnHome != nil {
		category.ShowProductsOnHome = *in.ShowProductsOnHome
	}
}
