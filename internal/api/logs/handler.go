// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package logs is the CloudWatch Logs wire surface: it resolves the
// per-region backend from the request's credential scope, decodes the AWS
// JSON 1.1 payload and translates backend results and failures back onto
// the wire. Business rules live in the backend; only length constraints on
// metric-filter parameters are enforced here.
package logs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mocklogs/internal/awsresponses"
	"mocklogs/internal/backend"
	"mocklogs/internal/util"
)

const targetPrefix = "Logs_20140328."

type Handler struct {
	svc *backend.Service
}

func NewHandler(svc *backend.Service) *Handler {
	return &Handler{svc: svc}
}

// Dispatch routes on the X-Amz-Target header.
func (h *Handler) Dispatch(c echo.Context) error {
	target := c.Request().Header.Get("X-Amz-Target")
	if !strings.HasPrefix(target, targetPrefix) {
		return awsresponses.WriteErrorCode(c, http.StatusBadRequest,
			"UnknownOperationException", "Unknown operation: "+target)
	}
	op := strings.TrimPrefix(target, targetPrefix)

	region := util.RegionFromRequest(c.Request())
	b, err := h.svc.Backend(region)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}

	switch op {
	case "CreateLogGroup":
		return h.createLogGroup(c, b)
	case "DeleteLogGroup":
		return h.deleteLogGroup(c, b)
	case "DescribeLogGroups":
		return h.describeLogGroups(c, b)
	case "CreateLogStream":
		return h.createLogStream(c, b)
	case "DeleteLogStream":
		return h.deleteLogStream(c, b)
	case "DescribeLogStreams":
		return h.describeLogStreams(c, b)
	case "PutLogEvents":
		return h.putLogEvents(c, b)
	case "GetLogEvents":
		return h.getLogEvents(c, b)
	case "FilterLogEvents":
		return h.filterLogEvents(c, b)
	case "PutRetentionPolicy":
		return h.putRetentionPolicy(c, b)
	case "DeleteRetentionPolicy":
		return h.deleteRetentionPolicy(c, b)
	case "ListTagsLogGroup":
		return h.listTagsLogGroup(c, b)
	case "TagLogGroup":
		return h.tagLogGroup(c, b)
	case "UntagLogGroup":
		return h.untagLogGroup(c, b)
	case "PutMetricFilter":
		return h.putMetricFilter(c, b)
	case "DescribeMetricFilters":
		return h.describeMetricFilters(c, b)
	case "DeleteMetricFilter":
		return h.deleteMetricFilter(c, b)
	default:
		return awsresponses.WriteErrorCode(c, http.StatusBadRequest,
			"UnknownOperationException", "Unknown operation: "+target)
	}
}

func decode(c echo.Context, v any) error {
	if err := util.DecodeAWSJSON(c.Request(), v); err != nil {
		return &backend.APIError{Code: "SerializationException", Message: "Could not deserialize the request body"}
	}
	return nil
}

func (h *Handler) createLogGroup(c echo.Context, b *backend.Backend) error {
	var req createLogGroupRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := lengthBetween(req.LogGroupName, "logGroupName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.CreateLogGroup(req.LogGroupName, req.Tags); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) deleteLogGroup(c echo.Context, b *backend.Backend) error {
	var req deleteLogGroupRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.DeleteLogGroup(req.LogGroupName); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) describeLogGroups(c echo.Context, b *backend.Backend) error {
	var req describeLogGroupsRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	groups, next, err := b.DescribeLogGroups(backend.DescribeLogGroupsParams{
		Prefix:    req.LogGroupNamePrefix,
		Limit:     req.Limit,
		NextToken: req.NextToken,
	})
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, describeLogGroupsResponse{LogGroups: groups, NextToken: next})
}

func (h *Handler) createLogStream(c echo.Context, b *backend.Backend) error {
	var req createLogStreamRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.CreateLogStream(req.LogGroupName, req.LogStreamName); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) deleteLogStream(c echo.Context, b *backend.Backend) error {
	var req deleteLogStreamRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.DeleteLogStream(req.LogGroupName, req.LogStreamName); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) describeLogStreams(c echo.Context, b *backend.Backend) error {
	var req describeLogStreamsRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	streams, next, err := b.DescribeLogStreams(req.LogGroupName, backend.DescribeLogStreamsParams{
		Prefix:     req.LogStreamNamePrefix,
		OrderBy:    req.OrderBy,
		Descending: req.Descending,
		Limit:      req.Limit,
		NextToken:  req.NextToken,
	})
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, describeLogStreamsResponse{LogStreams: streams, NextToken: next})
}

func (h *Handler) putLogEvents(c echo.Context, b *backend.Backend) error {
	var req putLogEventsRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	token, err := b.PutLogEvents(req.LogGroupName, req.LogStreamName, req.LogEvents, req.SequenceToken)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, putLogEventsResponse{NextSequenceToken: token})
}

func (h *Handler) getLogEvents(c echo.Context, b *backend.Backend) error {
	var req getLogEventsRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	result, err := b.GetLogEvents(req.LogGroupName, req.LogStreamName, backend.GetLogEventsParams{
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Limit:         req.Limit,
		NextToken:     req.NextToken,
		StartFromHead: req.StartFromHead,
	})
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, getLogEventsResponse{
		Events:            result.Events,
		NextBackwardToken: result.NextBackwardToken,
		NextForwardToken:  result.NextForwardToken,
	})
}

func (h *Handler) filterLogEvents(c echo.Context, b *backend.Backend) error {
	var req filterLogEventsRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	result, err := b.FilterLogEvents(req.LogGroupName, backend.FilterLogEventsParams{
		LogStreamNames: req.LogStreamNames,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		FilterPattern:  req.FilterPattern,
		Interleaved:    req.Interleaved,
		Limit:          req.Limit,
		NextToken:      req.NextToken,
	})
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, filterLogEventsResponse{
		Events:             result.Events,
		NextToken:          result.NextToken,
		SearchedLogStreams: result.SearchedLogStreams,
	})
}

func (h *Handler) putRetentionPolicy(c echo.Context, b *backend.Backend) error {
	var req putRetentionPolicyRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.PutRetentionPolicy(req.LogGroupName, req.RetentionInDays); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) deleteRetentionPolicy(c echo.Context, b *backend.Backend) error {
	var req deleteRetentionPolicyRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.DeleteRetentionPolicy(req.LogGroupName); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) listTagsLogGroup(c echo.Context, b *backend.Backend) error {
	var req listTagsLogGroupRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	tags, err := b.ListTagsLogGroup(req.LogGroupName)
	if err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteJSON(c, http.StatusOK, listTagsLogGroupResponse{Tags: tags})
}

func (h *Handler) tagLogGroup(c echo.Context, b *backend.Backend) error {
	var req tagLogGroupRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.TagLogGroup(req.LogGroupName, req.Tags); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) untagLogGroup(c echo.Context, b *backend.Backend) error {
	var req untagLogGroupRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := b.UntagLogGroup(req.LogGroupName, req.Tags); err != nil {
		return awsresponses.WriteError(c, err)
	}
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) putMetricFilter(c echo.Context, b *backend.Backend) error {
	var req putMetricFilterRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := lengthBetween(req.FilterName, "filterName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := lengthBetween(req.FilterPattern, "filterPattern", 0, 1024); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := lengthBetween(req.LogGroupName, "logGroupName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if len(req.MetricTransformations) != 1 {
		return awsresponses.WriteError(c, &backend.APIError{
			Code:    backend.CodeInvalidParameter,
			Message: "1 validation error detected: Value at 'metricTransformations' failed to satisfy constraint: Member must have length equal to 1",
		})
	}
	b.PutMetricFilter(req.FilterName, req.FilterPattern, req.LogGroupName, req.MetricTransformations)
	return awsresponses.WriteEmpty200(c)
}

func (h *Handler) describeMetricFilters(c echo.Context, b *backend.Backend) error {
	var req describeMetricFiltersRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.FilterNamePrefix, "filterNamePrefix", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.LogGroupName, "logGroupName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.MetricName, "metricName", 0, 255); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.MetricNamespace, "metricNamespace", 0, 255); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.NextToken, "nextToken", 1, 0); err != nil {
		return awsresponses.WriteError(c, err)
	}
	filters := b.DescribeMetricFilters(deref(req.FilterNamePrefix), deref(req.LogGroupName))
	return awsresponses.WriteJSON(c, http.StatusOK, describeMetricFiltersResponse{MetricFilters: filters, NextToken: ""})
}

func (h *Handler) deleteMetricFilter(c echo.Context, b *backend.Backend) error {
	var req deleteMetricFilterRequest
	if err := decode(c, &req); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.FilterName, "filterName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	if err := optionalLengthBetween(req.LogGroupName, "logGroupName", 1, 512); err != nil {
		return awsresponses.WriteError(c, err)
	}
	b.DeleteMetricFilter(deref(req.FilterName), deref(req.LogGroupName))
	return awsresponses.WriteEmpty200(c)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// lengthBetween enforces the service's string length constraints. max zero
// means unbounded above.
func lengthBetween(value, field string, min, max int) error {
	if len(value) < min {
		return &backend.APIError{
			Code: backend.CodeInvalidParameter,
			Message: fmt.Sprintf(
				"1 validation error detected: Value '%s' at '%s' failed to satisfy constraint: Member must have length greater than or equal to %d",
				value, field, min),
		}
	}
	if max > 0 && len(value) > max {
		return &backend.APIError{
			Code: backend.CodeInvalidParameter,
			Message: fmt.Sprintf(
				"1 validation error detected: Value '%s' at '%s' failed to satisfy constraint: Member must have length less than or equal to %d",
				value, field, max),
		}
	}
	return nil
}

func optionalLengthBetween(value *string, field string, min, max int) error {
	if value == nil {
		return nil
	}
	return lengthBetween(*value, field, min, max)
}
