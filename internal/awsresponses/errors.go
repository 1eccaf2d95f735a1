// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package awsresponses

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mocklogs/internal/backend"
)

type errorBody struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// WriteError maps a backend failure onto the wire. Known API errors become
// 400 with their service code; anything else is an InternalFailure.
func WriteError(c echo.Context, err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return WriteJSON(c, http.StatusBadRequest, errorBody{Type: apiErr.Code, Message: apiErr.Message})
	}
	return WriteJSON(c, http.StatusInternalServerError, errorBody{Type: "InternalFailure", Message: err.Error()})
}

// WriteErrorCode writes an explicit error shape, for failures raised at the
// HTTP layer before the backend is involved.
func WriteErrorCode(c echo.Context, status int, code, message string) error {
	return WriteJSON(c, status, errorBody{Type: code, Message: message})
}
