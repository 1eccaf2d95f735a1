// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package logs_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"mocklogs/internal/api/logs"
	"mocklogs/internal/backend"
)

func newEnv() (*backend.Service, *echo.Echo) {
	svc := backend.NewService([]string{"us-east-1", "us-west-2"}, nil)
	e := echo.New()
	h := logs.NewHandler(svc)
	e.POST("/", h.Dispatch)
	return svc, e
}

func call(t *testing.T, e *echo.Echo, op, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-amz-json-1.1")
	req.Header.Set("X-Amz-Target", "Logs_20140328."+op)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mustCall(t *testing.T, e *echo.Echo, op, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := call(t, e, op, body)
	if rec.Code != 200 {
		t.Fatalf("%s failed: %d %s", op, rec.Code, rec.Body.String())
	}
	return rec
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %q: %v", rec.Body.String(), err)
	}
	return body["__type"]
}

func TestCreateLogGroupDuplicateOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)

	rec := call(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorType(t, rec); got != "ResourceAlreadyExistsException" {
		t.Fatalf("unexpected error type %q", got)
	}
}

func TestCreateLogGroupNameLengthValidated(t *testing.T) {
	_, e := newEnv()

	rec := call(t, e, "CreateLogGroup", `{"logGroupName":""}`)
	if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
		t.Fatalf("empty name: %d %s", rec.Code, rec.Body.String())
	}

	long := strings.Repeat("x", 513)
	rec = call(t, e, "CreateLogGroup", `{"logGroupName":"`+long+`"}`)
	if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
		t.Fatalf("long name: %d %s", rec.Code, rec.Body.String())
	}
}

func TestDescribeLogGroupsWireShape(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)

	rec := mustCall(t, e, "DescribeLogGroups", `{}`)
	body := rec.Body.String()
	if !strings.Contains(body, `"nextToken":null`) {
		t.Fatalf("nextToken key must be present and null: %s", body)
	}
	if !strings.Contains(body, `"metricFilterCount":0`) {
		t.Fatalf("metricFilterCount missing: %s", body)
	}
	if strings.Contains(body, "retentionInDays") {
		t.Fatalf("retentionInDays must be omitted without a policy: %s", body)
	}

	// Offset tokens ride the wire as JSON numbers.
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app2"}`)
	rec = mustCall(t, e, "DescribeLogGroups", `{"limit":1}`)
	if !strings.Contains(rec.Body.String(), `"nextToken":1`) {
		t.Fatalf("expected numeric nextToken: %s", rec.Body.String())
	}
	rec = mustCall(t, e, "DescribeLogGroups", `{"limit":1,"nextToken":1}`)
	if !strings.Contains(rec.Body.String(), `"nextToken":null`) {
		t.Fatalf("expected exhausted token: %s", rec.Body.String())
	}
}

func TestPutLogEventsOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	mustCall(t, e, "CreateLogStream", `{"logGroupName":"app","logStreamName":"web"}`)

	rec := mustCall(t, e, "PutLogEvents",
		`{"logGroupName":"app","logStreamName":"web","logEvents":[{"timestamp":1,"message":"hello"}]}`)

	var resp struct {
		NextSequenceToken string `json:"nextSequenceToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if want := fmt.Sprintf("%056d", 1); resp.NextSequenceToken != want {
		t.Fatalf("unexpected sequence token %q", resp.NextSequenceToken)
	}
}

func TestGetLogEventsTokenWalkOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	mustCall(t, e, "CreateLogStream", `{"logGroupName":"app","logStreamName":"web"}`)

	var events []string
	for i := 0; i < 20; i++ {
		events = append(events, fmt.Sprintf(`{"timestamp":%d,"message":"m%d"}`, i, i))
	}
	mustCall(t, e, "PutLogEvents",
		`{"logGroupName":"app","logStreamName":"web","logEvents":[`+strings.Join(events, ",")+`]}`)

	rec := mustCall(t, e, "GetLogEvents",
		`{"logGroupName":"app","logStreamName":"web","limit":10}`)

	var page struct {
		Events []struct {
			Timestamp int64  `json:"timestamp"`
			Message   string `json:"message"`
		} `json:"events"`
		NextBackwardToken string `json:"nextBackwardToken"`
		NextForwardToken  string `json:"nextForwardToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Events) != 10 || page.Events[0].Timestamp != 10 || page.Events[9].Timestamp != 19 {
		t.Fatalf("unexpected tail page: %+v", page.Events)
	}
	if page.NextForwardToken != fmt.Sprintf("f/%056d", 19) {
		t.Fatalf("unexpected forward token %q", page.NextForwardToken)
	}
	if page.NextBackwardToken != fmt.Sprintf("b/%056d", 10) {
		t.Fatalf("unexpected backward token %q", page.NextBackwardToken)
	}

	// Walk backward to the head.
	rec = mustCall(t, e, "GetLogEvents",
		`{"logGroupName":"app","logStreamName":"web","limit":10,"nextToken":"`+page.NextBackwardToken+`"}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Events) != 10 || page.Events[0].Timestamp != 0 {
		t.Fatalf("unexpected head page: %+v", page.Events)
	}

	// Past the head: an empty page with both cursors pinned at zero.
	rec = mustCall(t, e, "GetLogEvents",
		`{"logGroupName":"app","logStreamName":"web","limit":10,"nextToken":"`+page.NextBackwardToken+`"}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Events) != 0 {
		t.Fatalf("expected empty page, got %+v", page.Events)
	}
	if page.NextBackwardToken != fmt.Sprintf("b/%056d", 0) || page.NextForwardToken != fmt.Sprintf("f/%056d", 0) {
		t.Fatalf("edge tokens wrong: b=%q f=%q", page.NextBackwardToken, page.NextForwardToken)
	}
}

func TestGetLogEventsInvalidTokenOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	mustCall(t, e, "CreateLogStream", `{"logGroupName":"app","logStreamName":"web"}`)

	for _, token := range []string{fmt.Sprintf("n/%056d", 0), "not-existing-token"} {
		rec := call(t, e, "GetLogEvents",
			`{"logGroupName":"app","logStreamName":"web","nextToken":"`+token+`"}`)
		if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
			t.Fatalf("token %q: %d %s", token, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "The specified nextToken is invalid.") {
			t.Fatalf("unexpected message: %s", rec.Body.String())
		}
	}
}

func TestFilterLogEventsWireShape(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	mustCall(t, e, "CreateLogStream", `{"logGroupName":"app","logStreamName":"web"}`)
	mustCall(t, e, "PutLogEvents",
		`{"logGroupName":"app","logStreamName":"web","logEvents":[{"timestamp":1,"message":"a"},{"timestamp":2,"message":"b"},{"timestamp":3,"message":"c"}]}`)

	rec := mustCall(t, e, "FilterLogEvents", `{"logGroupName":"app","limit":2}`)
	body := rec.Body.String()
	if !strings.Contains(body, `"nextToken":2`) {
		t.Fatalf("expected numeric nextToken: %s", body)
	}
	if !strings.Contains(body, `"searchedCompletely":true`) {
		t.Fatalf("searchedLogStreams missing: %s", body)
	}
	if !strings.Contains(body, `"eventId":"0"`) {
		t.Fatalf("eventId must be a decimal string: %s", body)
	}

	rec = mustCall(t, e, "FilterLogEvents", `{"logGroupName":"app","limit":2,"nextToken":2}`)
	if !strings.Contains(rec.Body.String(), `"nextToken":null`) {
		t.Fatalf("expected exhausted token: %s", rec.Body.String())
	}
}

func TestFilterLogEventsPatternRejected(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)

	rec := call(t, e, "FilterLogEvents", `{"logGroupName":"app","filterPattern":"ERROR"}`)
	if rec.Code != 400 || errorType(t, rec) != "UnsupportedOperationException" {
		t.Fatalf("expected UnsupportedOperationException: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRetentionPolicyOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app"}`)
	mustCall(t, e, "PutRetentionPolicy", `{"logGroupName":"app","retentionInDays":14}`)

	rec := mustCall(t, e, "DescribeLogGroups", `{}`)
	if !strings.Contains(rec.Body.String(), `"retentionInDays":14`) {
		t.Fatalf("retention missing: %s", rec.Body.String())
	}

	mustCall(t, e, "DeleteRetentionPolicy", `{"logGroupName":"app"}`)
	rec = mustCall(t, e, "DescribeLogGroups", `{}`)
	if strings.Contains(rec.Body.String(), "retentionInDays") {
		t.Fatalf("retention should be gone: %s", rec.Body.String())
	}
}

func TestTagFlowOverHTTP(t *testing.T) {
	_, e := newEnv()
	mustCall(t, e, "CreateLogGroup", `{"logGroupName":"app","tags":{"env":"dev"}}`)
	mustCall(t, e, "TagLogGroup", `{"logGroupName":"app","tags":{"env":"prod","team":"core"}}`)

	rec := mustCall(t, e, "ListTagsLogGroup", `{"logGroupName":"app"}`)
	var resp struct {
		Tags map[string]string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Tags["env"] != "prod" || resp.Tags["team"] != "core" {
		t.Fatalf("unexpected tags %v", resp.Tags)
	}

	mustCall(t, e, "UntagLogGroup", `{"logGroupName":"app","tags":["team"]}`)
	rec = mustCall(t, e, "ListTagsLogGroup", `{"logGroupName":"app"}`)
	if strings.Contains(rec.Body.String(), "team") {
		t.Fatalf("untag failed: %s", rec.Body.String())
	}
}

func TestMetricFilterFlowOverHTTP(t *testing.T) {
	_, e := newEnv()

	mustCall(t, e, "PutMetricFilter",
		`{"filterName":"errors","filterPattern":"","logGroupName":"app","metricTransformations":[{"metricName":"ErrorCount","metricNamespace":"App","metricValue":"1"}]}`)

	rec := mustCall(t, e, "DescribeMetricFilters", `{"logGroupName":"app"}`)
	body := rec.Body.String()
	if !strings.Contains(body, `"filterName":"errors"`) {
		t.Fatalf("filter missing: %s", body)
	}
	if !strings.Contains(body, `"nextToken":""`) {
		t.Fatalf("metric filter listings carry an empty string token: %s", body)
	}

	mustCall(t, e, "DeleteMetricFilter", `{"filterName":"errors","logGroupName":"app"}`)
	rec = mustCall(t, e, "DescribeMetricFilters", `{}`)
	if !strings.Contains(rec.Body.String(), `"metricFilters":[]`) {
		t.Fatalf("expected empty listing: %s", rec.Body.String())
	}
}

func TestPutMetricFilterValidation(t *testing.T) {
	_, e := newEnv()

	// Exactly one transformation is required.
	rec := call(t, e, "PutMetricFilter",
		`{"filterName":"errors","filterPattern":"","logGroupName":"app","metricTransformations":[]}`)
	if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
		t.Fatalf("no transformations: %d %s", rec.Code, rec.Body.String())
	}

	rec = call(t, e, "PutMetricFilter",
		`{"filterName":"","filterPattern":"","logGroupName":"app","metricTransformations":[{"metricName":"n","metricNamespace":"ns","metricValue":"1"}]}`)
	if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
		t.Fatalf("empty filter name: %d %s", rec.Code, rec.Body.String())
	}

	long := strings.Repeat("p", 1025)
	rec = call(t, e, "PutMetricFilter",
		`{"filterName":"f","filterPattern":"`+long+`","logGroupName":"app","metricTransformations":[{"metricName":"n","metricNamespace":"ns","metricValue":"1"}]}`)
	if rec.Code != 400 || errorType(t, rec) != "InvalidParameterException" {
		t.Fatalf("long pattern: %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownOperation(t *testing.T) {
	_, e := newEnv()

	rec := call(t, e, "DoTheImpossible", `{}`)
	if rec.Code != 400 || errorType(t, rec) != "UnknownOperationException" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	req.Header.Set("X-Amz-Target", "SomeOtherService.Op")
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, req)
	if recorder.Code != 400 || errorType(t, recorder) != "UnknownOperationException" {
		t.Fatalf("foreign target: %d %s", recorder.Code, recorder.Body.String())
	}
}

func TestMalformedBody(t *testing.T) {
	_, e := newEnv()

	rec := call(t, e, "CreateLogGroup", `{"logGroupName":`)
	if rec.Code != 400 || errorType(t, rec) != "SerializationException" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestMissingGroupErrors(t *testing.T) {
	_, e := newEnv()

	ops := map[string]string{
		"DeleteLogGroup":        `{"logGroupName":"nope"}`,
		"CreateLogStream":       `{"logGroupName":"nope","logStreamName":"s"}`,
		"DescribeLogStreams":    `{"logGroupName":"nope"}`,
		"PutRetentionPolicy":    `{"logGroupName":"nope","retentionInDays":7}`,
		"DeleteRetentionPolicy": `{"logGroupName":"nope"}`,
		"ListTagsLogGroup":      `{"logGroupName":"nope"}`,
		"TagLogGroup":           `{"logGroupName":"nope","tags":{"a":"b"}}`,
		"UntagLogGroup":         `{"logGroupName":"nope","tags":["a"]}`,
		"FilterLogEvents":       `{"logGroupName":"nope"}`,
	}
	for op, body := range ops {
		rec := call(t, e, op, body)
		if rec.Code != 400 || errorType(t, rec) != "ResourceNotFoundException" {
			t.Fatalf("%s: expected ResourceNotFoundException, got %d %s", op, rec.Code, rec.Body.String())
		}
	}
}
