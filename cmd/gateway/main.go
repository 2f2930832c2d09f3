package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/edupath/edupath-backend/internal/api/http"
	auth "github.com/edupath/edupath-backend/internal/auth/middleware"
	"github.com/edupath/edupath-backend/internal/assess"
	"github.com/edupath/edupath-backend/internal/catalog"
	"github.com/edupath/edupath-backend/internal/config"
	"github.com/edupath/edupath-backend/internal/db"
	"github.com/edupath/edupath-backend/internal/engage"
	"github.com/edupath/edupath-backend/internal/path"
	"github.com/edupath/edupath-backend/internal/rbac"
	"github.com/edupath/edupath-backend/internal/recommend"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := auth.BootstrapAdmin(ctx, dbh, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	// --- Stores ---
	catalogStore := catalog.NewSQLStore(dbh)
	assessStore := assess.NewSQLStore(dbh)
	engageStore := engage.NewSQLStore(dbh)
	recStore := recommend.NewSQLStore(dbh)
	pathStore := path.NewSQLStore(dbh)

	engine := recommend.NewEngine(assessStore, catalogStore, recStore)
	builder := &path.Builder{
		Catalog:      catalogStore,
		Engage:       engageStore,
		Assess:       assessStore,
		Rec:          engine,
		RecStore:     recStore,
		Paths:        pathStore,
		Tx:           pathStore,
		ContentLimit: cfg.ContentRecLimit,
	}

	// --- Auth (local JWT for offline/dev) ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := auth.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Catalog
		pr.With(rbac.Require("course:create")).
			Post("/courses", api.ImportCourseHandler(catalogStore))
		pr.With(rbac.Require("course:view")).
			Get("/courses", api.ListCoursesHandler(catalogStore))
		pr.With(rbac.Require("course:view")).
			Post("/courses/{courseID}/enroll", api.EnrollHandler(catalogStore))

		// Assessment ingest (collaborator write surface)
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.PutQuizHandler(assessStore))
		pr.With(rbac.Require("attempt:ingest")).
			Post("/attempts", api.IngestAttemptHandler(assessStore))

		// Engagement tracker
		pr.With(rbac.Require("progress:save")).
			Put("/progress/{blockID}", api.SaveProgressHandler(engageStore))

		// Recommendations
		pr.With(rbac.Require("recommendation:create")).
			Post("/recommendations/courses", api.RecommendCoursesHandler(engine))
		pr.With(rbac.Require("recommendation:create")).
			Post("/courses/{courseID}/recommendations/content", api.RecommendContentHandler(engine))
		pr.With(rbac.RequireAny("recommendation:view-own", "recommendation:view-all")).
			Get("/recommendations", api.ListRecommendationsHandler(recStore))

		// Learning paths
		pr.With(rbac.Require("path:create")).
			Post("/courses/{courseID}/learning-path", api.BuildPathHandler(builder))
		pr.With(rbac.RequireAny("path:view-own", "path:view-all")).
			Get("/learning-paths/{pathID}", api.GetPathHandler(pathStore))
		pr.With(rbac.RequireAny("path:view-own", "path:view-all")).
			Get("/learning-paths", api.ListMyPathsHandler(pathStore))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
