// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package awsresponses renders AWS JSON 1.1 protocol responses: one
// content type, a request id header on every reply, and errors carried in
// a {"__type", "message"} body at HTTP 400.
package awsresponses

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const ContentTypeAmzJSON = "application/x-amz-json-1.1"

func WriteJSON(c echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Response().Header().Set("x-amzn-RequestId", NextRequestID())
	return c.Blob(status, ContentTypeAmzJSON, b)
}

// WriteEmpty200 answers operations with no output shape. SDK deserializers
// accept an empty JSON document but not an empty body.
func WriteEmpty200(c echo.Context) error {
	c.Response().Header().Set("x-amzn-RequestId", NextRequestID())
	return c.Blob(http.StatusOK, ContentTypeAmzJSON, []byte("{}"))
}
