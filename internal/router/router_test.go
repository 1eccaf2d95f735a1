// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package router_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"mocklogs/internal/backend"
	"mocklogs/internal/router"
)

func newRouter() (*backend.Service, *echo.Echo) {
	svc := backend.NewService([]string{"us-east-1", "us-west-2"}, nil)
	return svc, router.New(svc)
}

func postLogs(t *testing.T, e *echo.Echo, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-amz-json-1.1")
	req.Header.Set("X-Amz-Target", target)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouterDispatchesLogsTarget(t *testing.T) {
	_, e := newRouter()

	rec := postLogs(t, e, "Logs_20140328.CreateLogGroup", `{"logGroupName":"app"}`)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postLogs(t, e, "Logs_20140328.DescribeLogGroups", `{}`)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"logGroupName":"app"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouterLogsPathAlias(t *testing.T) {
	_, e := newRouter()

	req := httptest.NewRequest("POST", "/logs", strings.NewReader(`{"logGroupName":"app"}`))
	req.Header.Set("X-Amz-Target", "Logs_20140328.CreateLogGroup")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterStateDump(t *testing.T) {
	svc, e := newRouter()

	b, _ := svc.Backend("us-east-1")
	if err := b.CreateLogGroup("dumped", nil); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/_mocklogs/state", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot backend.StateSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatal(err)
	}
	if snapshot.Region != "us-east-1" {
		t.Fatalf("unexpected region %q", snapshot.Region)
	}
	if len(snapshot.LogGroups) != 1 || snapshot.LogGroups[0].LogGroupName != "dumped" {
		t.Fatalf("unexpected snapshot: %s", rec.Body.String())
	}
}

func TestRouterStateQuery(t *testing.T) {
	svc, e := newRouter()

	b, _ := svc.Backend("us-west-2")
	if err := b.CreateLogGroup("alpha", nil); err != nil {
		t.Fatal(err)
	}
	if err := b.CreateLogGroup("beta", nil); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/_mocklogs/state?region=us-west-2&query=logGroups[].logGroupName", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("unexpected query result: %v", names)
	}
}

func TestRouterStateQueryInvalidExpression(t *testing.T) {
	_, e := newRouter()

	req := httptest.NewRequest("GET", "/_mocklogs/state?query=logGroups[", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouterReset(t *testing.T) {
	svc, e := newRouter()

	east, _ := svc.Backend("us-east-1")
	west, _ := svc.Backend("us-west-2")
	if err := east.CreateLogGroup("a", nil); err != nil {
		t.Fatal(err)
	}
	if err := west.CreateLogGroup("b", nil); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/_mocklogs/reset?region=us-east-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != 204 {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	if got := len(east.DumpState().LogGroups); got != 0 {
		t.Fatalf("expected east to be empty, got %d groups", got)
	}
	if got := len(west.DumpState().LogGroups); got != 1 {
		t.Fatalf("expected west untouched, got %d groups", got)
	}

	req = httptest.NewRequest("POST", "/_mocklogs/reset", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != 204 {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := len(west.DumpState().LogGroups); got != 0 {
		t.Fatalf("expected all regions reset, got %d groups", got)
	}
}

func TestRouterRegionFromCredentialScope(t *testing.T) {
	svc, e := newRouter()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"logGroupName":"scoped"}`))
	req.Header.Set("X-Amz-Target", "Logs_20140328.CreateLogGroup")
	req.Header.Set("Authorization",
		"AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20140328/us-west-2/logs/aws4_request, SignedHeaders=host, Signature=abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	west, _ := svc.Backend("us-west-2")
	if got := len(west.DumpState().LogGroups); got != 1 {
		t.Fatalf("expected group in us-west-2, got %d", got)
	}
	east, _ := svc.Backend("us-east-1")
	if got := len(east.DumpState().LogGroups); got != 0 {
		t.Fatalf("expected us-east-1 empty, got %d", got)
	}
}
