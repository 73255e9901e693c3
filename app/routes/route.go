package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/farsishop/storefront/app/configs"
	"github.com/farsishop/storefront/app/handlers"
	"github.com/farsishop/storefront/app/handlers/admin"
	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/middlewares"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/services"
	"github.com/farsishop/storefront/app/utils/renderer"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gocloud.dev/blob"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type Options struct {
	Env      configs.ENV
	Logger   zerolog.Logger
	Bucket   *blob.Bucket
	Notifier services.OrderNotifier
}

func NewRouter(db *gorm.DB, opts Options) (http.Handler, error) {
	return Build(repositories.NewRegistry(db), opts)
}

// Build wires services and handlers over repos and returns the full handler
// chain, CORS and method override included.
func Build(repos *repositories.Registry, opts Options) (http.Handler, error) {
	env, logger := opts.Env, opts.Logger

	tokens, err := sessions.NewTokenManager(env.SessionSecret, sessions.SessionTTL)
	if err != nil {
		return nil, err
	}
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return nil, err
	}
	csrfKey, err := configs.DecodeCSRFKey(env)
	if err != nil {
		return nil, err
	}
	if opts.Bucket == nil {
		return nil, fmt.Errorf("routes: upload bucket is required")
	}

	rnd := renderer.New(!env.IsProduction())
	validate := helpers.NewValidator()
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.Pairs()...)

	categoryService := services.NewCategoryService(repos.Categories, repos.Products, logger)
	productService := services.NewProductService(repos.Products, repos.Categories, logger)
	attributeService := services.NewAttributeService(repos.Attributes, repos.Categories)
	articleService := services.NewArticleService(repos.Articles)
	sliderService := services.NewSliderService(repos.Sliders)
	orderService := services.NewOrderService(repos.Orders, repos.Products, repos.Users, opts.Notifier, logger)
	authService := services.NewAuthService(repos.Users, tokens, logger)
	searchService := services.NewSearchService(repos.Products, repos.Categories)
	statsService := services.NewStatsService(repos)
	uploadService := services.NewUploadService(opts.Bucket, env.BlobPublicURL, logger)

	homeHandler := handlers.NewHomeHandler(rnd, env)
	categoryHandler := handlers.NewCategoryHandler(rnd, validate, categoryService, logger)
	productHandler := handlers.NewProductHandler(rnd, validate, productService, categoryService, logger)
	attributeHandler := handlers.NewAttributeHandler(rnd, validate, attributeService, logger)
	articleHandler := handlers.NewArticleHandler(rnd, validate, articleService, logger)
	sliderHandler := handlers.NewSliderHandler(rnd, validate, sliderService, logger)
	orderHandler := handlers.NewOrderHandler(rnd, validate, orderService, logger)
	searchHandler := handlers.NewSearchHandler(rnd, searchService, logger)
	authHandler := handlers.NewAuthHandler(rnd, validate, authService, sessionStore, logger)
	adminHandler := admin.NewAdminHandler(rnd, statsService, orderService, uploadService, logger)

	adminOnly := middlewares.AdminAuthMiddleware(repos.Users, rnd, logger)
	guarded := func(h http.HandlerFunc) http.Handler {
		return adminOnly(h)
	}
	orderLimiter := middlewares.NewRateLimiter(rate.Every(6*time.Second), 5, rnd, logger)
	loginLimiter := middlewares.NewRateLimiter(rate.Every(12*time.Second), 5, rnd, logger)
	for _, rl := range []*middlewares.RateLimiter{orderLimiter, loginLimiter} {
		if err := rl.TrustProxies(env.TrustedProxies...); err != nil {
			return nil, err
		}
	}
	limited := func(rl *middlewares.RateLimiter, h http.HandlerFunc) http.Handler {
		return rl.Middleware()(h)
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(homeHandler.MethodNotAllowed)
	router.Use(middlewares.Recover(rnd, logger))
	router.Use(middlewares.RequestLogging(logger))
	router.Use(middlewares.SecurityHeaders)

	router.HandleFunc("/health", homeHandler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	if csrfKey != nil {
		api.Use(middlewares.CSRF(csrfKey, env.IsProduction(), rnd, logger))
	}
	api.Use(middlewares.Authenticate(sessionStore, tokens, logger))

	api.HandleFunc("/site", homeHandler.Site).Methods(http.MethodGet)

	// fixed paths go before /{id}
	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories/tree", categoryHandler.Tree).Methods(http.MethodGet)
	api.HandleFunc("/categories/slug/{slug}", categoryHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.GetByID).Methods(http.MethodGet)
	api.Handle("/categories", guarded(categoryHandler.Create)).Methods(http.MethodPost)
	api.Handle("/categories/{id}", guarded(categoryHandler.Update)).Methods(http.MethodPut)
	api.Handle("/categories/{id}", guarded(categoryHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/best-selling", productHandler.BestSelling).Methods(http.MethodGet)
	api.HandleFunc("/products/newest", productHandler.Newest).Methods(http.MethodGet)
	api.HandleFunc("/products/related-categories", productHandler.RelatedCategories).Methods(http.MethodGet)
	api.HandleFunc("/products/slug/{slug}", productHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.GetByID).Methods(http.MethodGet)
	api.Handle("/products", guarded(productHandler.Create)).Methods(http.MethodPost)
	api.Handle("/products/{id}", guarded(productHandler.Update)).Methods(http.MethodPut)
	api.Handle("/products/{id}", guarded(productHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/attributes", attributeHandler.List).Methods(http.MethodGet)
	api.Handle("/attributes", guarded(attributeHandler.Create)).Methods(http.MethodPost)
	api.Handle("/attributes/{id}", guarded(attributeHandler.Update)).Methods(http.MethodPut)
	api.Handle("/attributes/{id}", guarded(attributeHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/articles", articleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/articles/slug/{slug}", articleHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id}", articleHandler.GetByID).Methods(http.MethodGet)
	api.Handle("/articles", guarded(articleHandler.Create)).Methods(http.MethodPost)
	api.Handle("/articles/{id}", guarded(articleHandler.Update)).Methods(http.MethodPut)
	api.Handle("/articles/{id}", guarded(articleHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/sliders", sliderHandler.List).Methods(http.MethodGet)
	api.Handle("/sliders", guarded(sliderHandler.Create)).Methods(http.MethodPost)
	api.Handle("/sliders/{id}", guarded(sliderHandler.Update)).Methods(http.MethodPut)
	api.Handle("/sliders/{id}", guarded(sliderHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	api.Handle("/orders", limited(orderLimiter, orderHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)
	api.Handle("/orders/{id}", guarded(orderHandler.Update)).Methods(http.MethodPut)
	api.Handle("/orders/{id}", guarded(orderHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet)
	api.Handle("/upload", guarded(adminHandler.Upload)).Methods(http.MethodPost)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.Handle("/phone-login", limited(loginLimiter, authHandler.PhoneLogin)).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/session", authHandler.Session).Methods(http.MethodGet)
	auth.HandleFunc("/csrf", authHandler.CSRF).Methods(http.MethodGet)

	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.Use(adminOnly)
	adminAPI.HandleFunc("/stats", adminHandler.Stats).Methods(http.MethodGet)
	adminAPI.HandleFunc("/orders/export", adminHandler.ExportOrders).Methods(http.MethodGet)

	var handler http.Handler = router
	handler = middlewares.MethodOverrideMiddleware(handler)
	handler = middlewares.CORS(env.CORSAllowedOrigins)(handler)
	return handler, nil
}
