// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package util_test

import (
	"net/http/httptest"
	"testing"

	"mocklogs/internal/util"
)

func TestRegionFromRequest(t *testing.T) {
	cases := []struct {
		name string
		auth string
		want string
	}{
		{
			name: "no auth header",
			auth: "",
			want: "us-east-1",
		},
		{
			name: "sigv4 scope",
			auth: "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20140328/us-west-2/logs/aws4_request, SignedHeaders=host, Signature=abc",
			want: "us-west-2",
		},
		{
			name: "sigv4 scope gov region",
			auth: "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20140328/us-gov-west-1/logs/aws4_request, SignedHeaders=host, Signature=abc",
			want: "us-gov-west-1",
		},
		{
			name: "missing credential",
			auth: "AWS4-HMAC-SHA256 SignedHeaders=host, Signature=abc",
			want: "us-east-1",
		},
		{
			name: "truncated scope",
			auth: "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20140328",
			want: "us-east-1",
		},
		{
			name: "non sigv4 auth",
			auth: "Basic dXNlcjpwYXNz",
			want: "us-east-1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			if got := util.RegionFromRequest(req); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
