package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/pranaflow/prana-server/internal/api/recovery"
)

// NewRouter wires HTTP routes to handlers.
func NewRouter(engine *EngineHandler, health *HealthHandler, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(log))

	root.HandleFunc("/api/users/{userId}/reflections", engine.SubmitReflection).Methods("POST")
	root.HandleFunc("/api/users/{userId}/chakras/{chakraIndex}/activate", engine.ActivateChakra).Methods("POST")
	root.HandleFunc("/api/users/{userId}/recalibrations", engine.Recalibrate).Methods("POST")
	root.HandleFunc("/api/users/{userId}/progress", engine.GetProgress).Methods("GET")

	root.HandleFunc("/api/health", health.CheckHealth).Methods("GET")

	return root
}
