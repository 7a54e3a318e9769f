package internal

import (
	"net/http"

	"avd/internal/controllers"
	"avd/internal/providers"
	"avd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/clients", http.HandlerFunc(apiController.ListClients))
	routers.Post("/clients", http.HandlerFunc(apiController.CreateClient))
	routers.Put("/clients", http.HandlerFunc(apiController.UpdateClient))
	routers.Delete("/clients", http.HandlerFunc(apiController.DeleteClient))
	routers.Get("/client", http.HandlerFunc(apiController.GetClient))
	routers.Get("/clients/code", http.HandlerFunc(apiController.SuggestClientCode))

	routers.Get("/predictions", http.HandlerFunc(apiController.ListPredictions))
	routers.Post("/predictions", http.HandlerFunc(apiController.CreatePrediction))
	routers.Put("/predictions", http.HandlerFunc(apiController.UpdatePrediction))
	routers.Delete("/predictions", http.HandlerFunc(apiController.DeletePrediction))
	routers.Post("/predictions/generate", http.HandlerFunc(apiController.GeneratePrediction))

	routers.Get("/settings", http.HandlerFunc(apiController.GetSettings))
	routers.Put("/settings", http.HandlerFunc(apiController.UpdateSettings))

	routers.Get("/connections", http.HandlerFunc(apiController.ListConnections))
	routers.Put("/connections", http.HandlerFunc(apiController.SetConnection))

	routers.Get("/statistics", http.HandlerFunc(apiController.GetStatistics))
	routers.Get("/logs", http.HandlerFunc(apiController.GetLogs))

	routers.Get("/backups", http.HandlerFunc(apiController.ListBackups))
	routers.Post("/backups", http.HandlerFunc(apiController.CreateBackup))
	routers.Post("/restore", http.HandlerFunc(apiController.RestoreBackup))

	routers.Get("/export", http.HandlerFunc(apiController.Export))
	routers.Post("/import", http.HandlerFunc(apiController.Import))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))

	return routers
}
