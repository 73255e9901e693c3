package breadcrumb

import "github.com/farsishop/storefront/app/models"

type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// FromCategory walks the eager-loaded Parent chain and returns the trail
// ordered root first, ending at category itself.
func FromCategory(category *models.Category) []Breadcrumb {
	var trail []Breadcrumb
	seen := make(map[string]bool)
	for c := category; c != nil && !seen[c.ID]; c = c.Parent {
		seen[c.ID] = true
		trail = append(trail, Breadcrumb{
			ID:   c.ID,
			Name: c.Name,
			Slug: c.Slug,
			URL:  "/category/" + c.Slug,
		})
	}

	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}
	if trail == nil {
		return []Breadcrumb{}
	}
	return trail
}
