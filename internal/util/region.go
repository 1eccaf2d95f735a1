// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package util

import (
	"net/http"
	"strings"
)

// DefaultRegion is used when a request carries no usable credential scope.
const DefaultRegion = "us-east-1"

// RegionFromRequest pulls the region out of the SigV4 Authorization header.
// The credential scope looks like
//
//	Credential=AKIDEXAMPLE/20140328/us-west-2/logs/aws4_request
//
// and the region is its third segment. Signatures are never verified; only
// the scope is read.
func RegionFromRequest(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.Contains(auth, "AWS4-HMAC-SHA256") {
		return DefaultRegion
	}

	idx := strings.Index(auth, "Credential=")
	if idx == -1 {
		return DefaultRegion
	}
	scope := auth[idx+len("Credential="):]
	if end := strings.IndexAny(scope, ", "); end != -1 {
		scope = scope[:end]
	}

	parts := strings.Split(scope, "/")
	if len(parts) < 5 || parts[2] == "" {
		return DefaultRegion
	}
	return parts[2]
}
