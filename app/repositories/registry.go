package repositories

import "gorm.io/gorm"

// Registry groups the repositories so routes and commands can wire them in one place.
type Registry struct {
	Categories CategoryRepositoryImpl
	Products   ProductRepositoryImpl
	Attributes AttributeRepositoryImpl
	Articles   ArticleRepositoryImpl
	Sliders    SliderRepositoryImpl
	Orders     OrderRepository
	Users      UserRepositoryImpl
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		Categories: NewCategoryRepository(db),
		Products:   NewProductRepository(db),
		Attributes: NewAttributeRepository(db),
		Articles:   NewArticleRepository(db),
		Sliders:    NewSliderRepository(db),
		Orders:     NewOrderRepository(db),
		Users:      NewUserRepository(db),
	}
}
