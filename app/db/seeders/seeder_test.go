package seeders

import (
	"context"
	"testing"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin_CreatesAdmin(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("FindByEmail", mock.Anything, "admin@shop.ir").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "admin@shop.ir" && u.Role == models.RoleAdmin
	})).Return(nil)

	admin, err := SeedAdmin(context.Background(), users, " Admin@Shop.ir ", "long-enough", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	users.AssertExpectations(t)
}

func TestSeedAdmin_ReseedOnlyTouchesRoleAndPassword(t *testing.T) {
	phone := "09121234567"
	existing := &models.User{ID: "u1", Name: "نام قبلی", Email: "admin@shop.ir", Phone: &phone, Password: "old", Role: models.RoleUser}
	users := new(mocks.UserRepository)
	users.On("FindByEmail", mock.Anything, "admin@shop.ir").Return(existing, nil)
	users.On("Update", mock.Anything, existing).Return(nil)

	admin, err := SeedAdmin(context.Background(), users, "admin@shop.ir", "new-password", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "نام قبلی", admin.Name)
	assert.Equal(t, &phone, admin.Phone)
	assert.True(t, helpers.PasswordCompare(admin.Password, []byte("new-password")))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedAdmin_RequiresCredentials(t *testing.T) {
	users := new(mocks.UserRepository)

	_, err := SeedAdmin(context.Background(), users, "", "whatever-pass", zerolog.Nop())
	assert.Error(t, err)

	_, err = SeedAdmin(context.Background(), users, "admin@shop.ir", "short", zerolog.Nop())
	assert.Error(t, err)
}

func TestSeedDemo(t *testing.T) {
	registry, set := mocks.NewRegistry()
	set.Categories.On("Count", mock.Anything).Return(int64(0), nil)
	set.Categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Category)
			c.ID = c.Slug
		}).
		Return(nil)
	set.Attributes.On("Create", mock.Anything, mock.AnythingOfType("*models.Attribute")).Return(nil)
	set.Products.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.CategoryID != "" && len(p.Images) > 0
	})).Return(nil)
	set.Articles.On("Create", mock.Anything, mock.AnythingOfType("*models.Article")).Return(nil)
	set.Sliders.On("Create", mock.Anything, mock.AnythingOfType("*models.Slider")).Return(nil)

	require.NoError(t, SeedDemo(context.Background(), registry, zerolog.Nop()))

	set.Categories.AssertNumberOfCalls(t, "Create", demoRootCategories*(demoChildCategories+1))
	set.Products.AssertNumberOfCalls(t, "Create", demoRootCategories*demoChildCategories*demoProductsPerLeaf)
	set.Sliders.AssertNumberOfCalls(t, "Create", demoSliders)
}

func TestSeedDemo_SkipsNonEmptyCatalog(t *testing.T) {
	registry, set := mocks.NewRegistry()
	set.Categories.On("Count", mock.Anything).Return(int64(3), nil)

	require.NoError(t, SeedDemo(context.Background(), registry, zerolog.Nop()))
	set.Categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
