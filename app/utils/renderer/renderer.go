package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer shared by every handler. Persian text and
// HTML descriptions are written unescaped.
func New(isDevelopment bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    isDevelopment,
		UnEscapeHTML:  true,
		IsDevelopment: isDevelopment,
		Charset:       "UTF-8",
	})
}
