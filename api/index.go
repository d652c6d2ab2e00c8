package handler

import (
	"net/http"
	"sync"

	"roomstack/config"
	"roomstack/di"
	"roomstack/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler serves the API from a serverless function. The router is built on the first request
// and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)

		service = di.InitializeService().Handler()
	})

	service.ServeHTTP(w, r)
}
