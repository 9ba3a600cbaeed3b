package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/pitchside/internal/command"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/settings"
	"github.com/mauv0809/pitchside/internal/store"
)

func NewServer(engine *match.Engine, st store.Store, dispatcher *command.Dispatcher, holder *settings.Holder, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Engine:         engine,
		Store:          st,
		Dispatcher:     dispatcher,
		Settings:       holder,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Hub:            NewHub(dispatcher),
		Router:         http.NewServeMux(),
		validate:       validator.New(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /state", Chain(s.StateHandler(), paramsMiddleware))
	s.Router.Handle("GET /presets", Chain(s.PresetsHandler(), paramsMiddleware))
	s.Router.Handle("POST /command", Chain(s.CommandHandler(), paramsMiddleware))
	s.Router.Handle("POST /key", Chain(s.KeyHandler(), paramsMiddleware))
	s.Router.Handle("PUT /tournament", Chain(s.TournamentHandler(), paramsMiddleware))
	s.Router.Handle("POST /preset", Chain(s.ChangePresetHandler(), paramsMiddleware))
	s.Router.Handle("POST /period", Chain(s.PeriodHandler(), paramsMiddleware))
	s.Router.Handle("POST /time", Chain(s.TimeHandler(), paramsMiddleware))
	s.Router.Handle("POST /possession", Chain(s.PossessionHandler(), paramsMiddleware))
	s.Router.Handle("POST /teams/{side}/stats", Chain(s.TeamStatsHandler(), paramsMiddleware))
	s.Router.Handle("POST /teams/{side}/players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /teams/{side}/players/{id}", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /teams/{side}/players/{id}/stats", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("POST /undo", Chain(s.UndoHandler(), paramsMiddleware))
	s.Router.Handle("POST /redo", Chain(s.RedoHandler(), paramsMiddleware))
	s.Router.Handle("POST /reset", Chain(s.ResetHandler(), paramsMiddleware))
	s.Router.Handle("GET /settings", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /settings", Chain(s.PutSettingsHandler(), paramsMiddleware))
	s.Router.Handle("/ws", s.Hub.ServeWS())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
