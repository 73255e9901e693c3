package fakers

import (
	"fmt"
	"math/rand"

	"github.com/farsishop/storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var productImages = []string{
	"/uploads/demo/product-1.jpg",
	"/uploads/demo/product-2.jpg",
	"/uploads/demo/product-3.jpg",
}

// ProductFaker builds an unsaved product inside category. Roughly one in five
// products has no price, which the storefront shows as "call for price".
func ProductFaker(category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()

	numImages := rand.Intn(len(productImages)) + 1
	images := make([]string, numImages)
	for i := range images {
		images[i] = productImages[rand.Intn(len(productImages))]
	}

	product := &models.Product{
		Name:          name,
		Slug:          uniqueSlug(name),
		Description:   fmt.Sprintf("<p>%s</p>", faker.Paragraph()),
		Images:        images,
		CategoryID:    category.ID,
		IsBestSelling: rand.Intn(4) == 0,
	}
	if rand.Intn(5) != 0 {
		product.Price = decimal.NewNullDecimal(fakePrice())
	}
	if rand.Intn(2) == 0 {
		inventory := rand.Intn(50)
		product.Inventory = &inventory
	}
	return product
}

// fakePrice returns a whole Toman amount between 100,000 and 50,000,000.
func fakePrice() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(500)+1) * 100000)
}

func uniqueSlug(text string) string {
	return slug.Make(text + "-" + uuid.NewString()[:6])
}
