package handler

import (
	"net/http"

	"bizdesk/config"
	"bizdesk/di"
	"bizdesk/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server := di.InitializeService()
	server.Adaptor()(w, r)
}
