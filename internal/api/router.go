package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/vkazakov/adboard-backend/internal/api/handlers"
	"github.com/vkazakov/adboard-backend/internal/auth"
	"github.com/vkazakov/adboard-backend/internal/config"
	"github.com/vkazakov/adboard-backend/internal/metrics"
	"github.com/vkazakov/adboard-backend/internal/middleware"
	"github.com/vkazakov/adboard-backend/internal/services"
	"github.com/vkazakov/adboard-backend/internal/storage"
)

// Access is the per-route policy. Keeping it next to each route in one table
// makes the whole allow-list auditable in one read.
type Access int

const (
	Public Access = iota
	Authenticated
)

type Route struct {
	Method  string
	Pattern string
	Access  Access
	Handler http.HandlerFunc
}

type Deps struct {
	Cfg      config.Config
	Users    *services.UserService
	Ads      *services.AdService
	Comments *services.CommentService
	Images   *storage.ImageStore
	Tokens   *auth.TokenManager
}

// Routes is the full HTTP surface. Mutating ad/comment operations are listed
// as Authenticated only; per-resource owner-or-admin checks live in the
// services, not here.
func Routes(d Deps) []Route {
	authH := handlers.NewAuthHandler(d.Users, d.Tokens)
	adsH := handlers.NewAdsHandler(d.Ads)
	commentsH := handlers.NewCommentsHandler(d.Comments)
	usersH := handlers.NewUsersHandler(d.Users)
	imagesH := handlers.NewImagesHandler(d.Images)

	return []Route{
		{http.MethodPost, "/register", Public, authH.Register},
		{http.MethodPost, "/login", Public, authH.Login},
		{http.MethodGet, "/ads", Public, adsH.List},
		{http.MethodGet, "/ads/{id:[0-9]+}", Public, adsH.GetFull},
		{http.MethodGet, "/images/*", Public, imagesH.Download},

		{http.MethodPost, "/ads", Authenticated, adsH.Create},
		{http.MethodGet, "/ads/me", Authenticated, adsH.ListMine},
		{http.MethodPatch, "/ads/{id:[0-9]+}", Authenticated, adsH.Update},
		{http.MethodDelete, "/ads/{id:[0-9]+}", Authenticated, adsH.Delete},
		{http.MethodPatch, "/ads/image/{id:[0-9]+}", Authenticated, adsH.UpdateImage},

		{http.MethodGet, "/users/me", Authenticated, usersH.Me},
		{http.MethodPatch, "/users/me", Authenticated, usersH.UpdateMe},
		{http.MethodPost, "/users/set_password", Authenticated, usersH.SetPassword},
		{http.MethodPatch, "/users/me/image", Authenticated, usersH.UpdateAvatar},

		{http.MethodGet, "/comments/{adID:[0-9]+}", Authenticated, commentsH.ListForAd},
		{http.MethodPost, "/comments/{adID:[0-9]+}", Authenticated, commentsH.Create},
		{http.MethodPatch, "/comments/{adID:[0-9]+}/{id:[0-9]+}", Authenticated, commentsH.Update},
		{http.MethodDelete, "/comments/{adID:[0-9]+}/{id:[0-9]+}", Authenticated, commentsH.Delete},
	}
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover)
	r.Use(httprate.LimitByIP(d.Cfg.RateRPS, time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.HTTPMetrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authMW := middleware.NewAuthMiddleware(d.Users, d.Tokens)
	routes := Routes(d)

	r.Group(func(pub chi.Router) {
		for _, rt := range routes {
			if rt.Access == Public {
				pub.Method(rt.Method, rt.Pattern, rt.Handler)
			}
		}
	})
	r.Group(func(priv chi.Router) {
		priv.Use(authMW.Require)
		for _, rt := range routes {
			if rt.Access == Authenticated {
				priv.Method(rt.Method, rt.Pattern, rt.Handler)
			}
		}
	})

	return r
}
