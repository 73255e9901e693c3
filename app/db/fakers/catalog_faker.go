package fakers

import (
	"fmt"
	"math/rand"

	"github.com/farsishop/storefront/app/models"
	"github.com/go-faker/faker/v4"
)

// CategoryFaker builds an unsaved category under parent, or a root when parent is nil.
func CategoryFaker(parent *models.Category, order int) *models.Category {
	name := faker.Word() + " " + faker.Word()
	category := &models.Category{
		Name:         name,
		Slug:         uniqueSlug(name),
		Description:  faker.Sentence(),
		Image:        "/uploads/demo/category.jpg",
		DisplayOrder: order,
		IsActive:     true,
	}
	if parent == nil {
		category.ShowOnHome = order < 4
		category.ShowProductsOnHome = order < 2
		return category
	}
	category.ParentID = &parent.ID
	category.Level = parent.Level + 1
	return category
}

func AttributeFaker(category *models.Category) *models.Attribute {
	values := make([]string, rand.Intn(3)+2)
	for i := range values {
		values[i] = faker.Word()
	}
	return &models.Attribute{
		Name:       faker.Word(),
		Values:     values,
		CategoryID: category.ID,
	}
}

func ArticleFaker(order int) *models.Article {
	title := faker.Sentence()
	return &models.Article{
		Title:        title,
		Slug:         uniqueSlug(title),
		Description:  fmt.Sprintf("<p>%s</p><p>%s</p>", faker.Paragraph(), faker.Paragraph()),
		IsActive:     true,
		DisplayOrder: order,
	}
}

func SliderFaker(order int) *models.Slider {
	link := "/products"
	return &models.Slider{
		Title:        faker.Sentence(),
		Link:         &link,
		Image:        fmt.Sprintf("/uploads/demo/slider-%d.jpg", order+1),
		DisplayOrder: order,
		IsActive:     true,
	}
}
