// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mocklogs/internal/util"
)

// RequestLogger prints a concise line per request so client traffic can be
// traced by operation and region.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			zap.L().Info("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("target", req.Header.Get("X-Amz-Target")),
				zap.String("region", util.RegionFromRequest(req)),
				zap.Int("status", res.Status),
				zap.Int64("size", res.Size),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
