package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"

	"eiborservice/internal/api"
	"eiborservice/internal/api/middleware"
)

const monitoringPath = "/monitoring"

func (app *App) initHTTP() {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/eibor", func(r chi.Router) {
		r.Post("/fetch", api.HandleFetchRates(app.ingestService))
		r.Post("/fetch/async", api.HandleEnqueueFetch(app.enqueuer))
		r.Post("/estimate", api.HandleEstimate(app.ratesService))

		r.Route("/rates", func(r chi.Router) {
			r.Get("/latest", api.HandleGetLatestRates(app.ratesService))
			r.Get("/snapshot", api.HandleGetSnapshot(app.ratesService))
			r.Get("/history", api.HandleGetHistory(app.ratesService))
			r.Get("/history/chart.png", api.HandleHistoryChart(app.ratesService, app.logger))
			r.Get("/history/export.xlsx", api.HandleHistoryExport(app.ratesService, app.logger))
		})
	})

	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(
		api.PostgresCheck(app.db),
		api.RedisCheck("redis_cache", app.rdbCache),
		api.RedisCheck("redis_asynq", app.rdbAsynq),
	))

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if app.cfg.Server.ServeAsynqmon {
		mon := asynqmon.New(asynqmon.Options{
			RootPath:     monitoringPath,
			RedisConnOpt: asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr},
		})
		app.monitor = mon
		r.Handle(mon.RootPath()+"/*", mon)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// synchronous /eibor/fetch waits on the extraction service
		WriteTimeout: time.Duration(app.cfg.Firecrawl.Timeout+15) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
