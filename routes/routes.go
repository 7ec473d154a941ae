package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hokkyo/riichi-league/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	historyHandler *handlers.HistoryHandler,
	scheduleHandler *handlers.ScheduleHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayer)
		r.Patch("/{playerID}", playerHandler.RenamePlayer)
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListRounds)
		r.Get("/current", gameHandler.GetCurrentRound)
		r.Get("/current-round", gameHandler.GetCurrentRoundNumber)
		r.Post("/current/results", gameHandler.SubmitResults)
		r.Post("/current/regroup", gameHandler.RegroupCurrentRound)
	})

	router.Route("/history", func(r chi.Router) {
		r.Get("/", historyHandler.ListHistory)
		r.Post("/recompute", historyHandler.RecomputeStandings)
		r.Put("/{roundNumber}/tables/{tableID}", historyHandler.UpdateTableRecord)
	})

	router.Route("/schedules", func(r chi.Router) {
		r.Get("/", scheduleHandler.ListSchedules)
		r.Get("/common", scheduleHandler.CommonSlots)
		r.Get("/{playerID}", scheduleHandler.GetPlayerSchedule)
		r.Put("/{playerID}", scheduleHandler.SavePlayerSchedule)
		r.Post("/{playerID}/toggle", scheduleHandler.ToggleSlot)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Post("/reset", adminHandler.Reset)
		r.Get("/export", adminHandler.Export)
		r.Post("/import", adminHandler.Import)
		r.Post("/backup-schedules", adminHandler.BackupSchedules)
	})

	router.Get("/ws", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}
