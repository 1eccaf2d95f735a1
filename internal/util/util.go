// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package util

import (
	"encoding/json"
	"io"
	"net/http"
)

func DecodeAWSJSON(r *http.Request, v any) error {
	body := r.Body
	defer body.Close()

	// Always drain the body
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, v)
}
