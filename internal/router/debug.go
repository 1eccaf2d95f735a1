// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package router

import (
	"encoding/json"
	"net/http"

	"github.com/jmespath/go-jmespath"
	"github.com/labstack/echo/v4"

	"mocklogs/internal/awsresponses"
	"mocklogs/internal/backend"
	"mocklogs/internal/util"
)

type debugHandler struct {
	svc *backend.Service
}

func newDebugHandler(svc *backend.Service) *debugHandler {
	return &debugHandler{svc: svc}
}

// State dumps one region's backend. An optional ?query= JMESPath
// expression narrows the dump, e.g. query=logGroups[].logGroupName.
func (h *debugHandler) State(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		region = util.DefaultRegion
	}
	b, err := h.svc.Backend(region)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	snapshot := b.DumpState()

	expr := c.QueryParam("query")
	if expr == "" {
		return c.JSON(http.StatusOK, snapshot)
	}

	// JMESPath evaluates over generic JSON values, so round-trip the
	// typed snapshot first.
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return awsresponses.WriteError(c, err)
	}
	result, err := jmespath.Search(expr, doc)
	if err != nil {
		return awsresponses.WriteErrorCode(c, http.StatusBadRequest,
			"InvalidParameterException", "invalid query expression: "+err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// Reset clears one region, or every region when none is given. Id counters
// keep running so identifiers stay unique across resets.
func (h *debugHandler) Reset(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		h.svc.ResetAll()
		return c.NoContent(http.StatusNoContent)
	}
	b, err := h.svc.Backend(region)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	b.Reset()
	return c.NoContent(http.StatusNoContent)
}
