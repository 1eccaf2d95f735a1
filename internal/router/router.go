// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package router

import (
	"github.com/labstack/echo/v4"

	"mocklogs/internal/api/logs"
	"mocklogs/internal/backend"
)

// New wires the HTTP surface. The service speaks AWS JSON 1.1 on POST to
// the root and to /logs, the path SDKs use when pointed at a single
// emulator endpoint. The /_mocklogs routes are the out-of-band debug
// surface and never collide with service operations.
func New(svc *backend.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(RequestLogger())

	logsh := logs.NewHandler(svc)
	e.POST("/", logsh.Dispatch)
	e.POST("/logs", logsh.Dispatch)

	dbg := newDebugHandler(svc)
	e.GET("/_mocklogs/state", dbg.State)
	e.POST("/_mocklogs/reset", dbg.Reset)

	return e
}
