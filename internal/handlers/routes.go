package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/recruitment-ranker/internal/config"
	"alfredoptarigan/recruitment-ranker/internal/middleware"
	"alfredoptarigan/recruitment-ranker/internal/models"
)

// Router groups the handlers mounted under /api/v1.
type Router struct {
	Vacancies    *VacancyHandler
	Applications *ApplyHandler
	Candidates   *CandidateHandler
	Interviews   *InterviewHandler
	Tokens       middleware.TokenValidator
}

// NewApp builds the Fiber app with the shared middleware stack.
func NewApp(cfg *config.Config, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Recruitment Ranking API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if accessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too Many Requests",
			})
		},
	}))

	return app
}

// Register mounts every route on app.
func (r Router) Register(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	rec := api.Group("/recruitment")

	// Public
	rec.Get("/vacancies", r.Vacancies.HandleList)
	rec.Get("/vacancies/:id", middleware.OptionalAuthenticate(r.Tokens), r.Vacancies.HandleDetails)
	rec.Post("/vacancies/:id/apply", r.Applications.HandleApply)

	// Staff only. Guards are attached per route: a guarded Group would
	// also match the public routes sharing its prefix.
	auth := middleware.Authenticate(r.Tokens)
	staff := middleware.Authorize(models.RoleAdmin, models.RoleHR)

	rec.Post("/vacancies", auth, staff, r.Vacancies.HandleCreate)
	rec.Put("/vacancies/:id", auth, staff, r.Vacancies.HandleUpdate)
	rec.Delete("/vacancies/:id", auth, staff, r.Vacancies.HandleDelete)

	rec.Get("/candidates", auth, staff, r.Candidates.HandleList)
	rec.Post("/candidates", auth, staff, r.Candidates.HandleCreate)
	rec.Put("/candidates/:id", auth, staff, r.Candidates.HandleUpdate)
	rec.Delete("/candidates/:id", auth, staff, r.Candidates.HandleDelete)
	rec.Get("/candidates/:id/resume", auth, staff, r.Candidates.HandleDownloadResume)

	rec.Get("/interviews", auth, staff, r.Interviews.HandleList)
	rec.Post("/interviews", auth, staff, r.Interviews.HandleSchedule)
	rec.Put("/interviews/:id", auth, staff, r.Interviews.HandleUpdate)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Recruitment Ranking API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/recruitment/vacancies",
				"GET /api/v1/recruitment/vacancies/:id",
				"POST /api/v1/recruitment/vacancies/:id/apply",
				"POST /api/v1/recruitment/vacancies",
				"PUT /api/v1/recruitment/vacancies/:id",
				"DELETE /api/v1/recruitment/vacancies/:id",
				"GET /api/v1/recruitment/candidates",
				"POST /api/v1/recruitment/candidates",
				"PUT /api/v1/recruitment/candidates/:id",
				"DELETE /api/v1/recruitment/candidates/:id",
				"GET /api/v1/recruitment/candidates/:id/resume",
				"GET /api/v1/recruitment/interviews",
				"POST /api/v1/recruitment/interviews",
				"PUT /api/v1/recruitment/interviews/:id",
			},
		})
	})
}
