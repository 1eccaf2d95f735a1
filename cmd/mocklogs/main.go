// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"mocklogs/internal/backend"
	"mocklogs/internal/logging"
	"mocklogs/internal/regions"
	"mocklogs/internal/router"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	svc := backend.NewService(regions.All(), backend.SystemClock)
	handler := router.New(svc)

	addr := os.Getenv("MOCKLOGS_ADDR")
	if addr == "" {
		addr = ":4566"
	}

	srv := &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zap.L().Info("starting server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil {
		zap.L().Fatal("http server exited",
			zap.Error(err),
		)
	}
}
