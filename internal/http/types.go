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

type Server struct {
	Engine         *match.Engine
	Store          store.Store
	Dispatcher     *command.Dispatcher
	Settings       *settings.Holder
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Hub            *Hub
	Router         *http.ServeMux

	validate *validator.Validate
}
