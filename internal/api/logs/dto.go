// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package logs

import (
	"mocklogs/internal/backend"
	"mocklogs/internal/metricfilters"
)

// Request shapes. Field names follow the service JSON casing; pointer
// fields distinguish absent from zero where the distinction matters.

type createLogGroupRequest struct {
	LogGroupName string            `json:"logGroupName"`
	Tags         map[string]string `json:"tags"`
}

type deleteLogGroupRequest struct {
	LogGroupName string `json:"logGroupName"`
}

type describeLogGroupsRequest struct {
	LogGroupNamePrefix string `json:"logGroupNamePrefix"`
	Limit              int    `json:"limit"`
	NextToken          *int64 `json:"nextToken"`
}

type createLogStreamRequest struct {
	LogGroupName  string `json:"logGroupName"`
	LogStreamName string `json:"logStreamName"`
}

type deleteLogStreamRequest struct {
	LogGroupName  string `json:"logGroupName"`
	LogStreamName string `json:"logStreamName"`
}

type describeLogStreamsRequest struct {
	LogGroupName        string `json:"logGroupName"`
	LogStreamNamePrefix string `json:"logStreamNamePrefix"`
	OrderBy             string `json:"orderBy"`
	Descending          bool   `json:"descending"`
	Limit               int    `json:"limit"`
	NextToken           *int64 `json:"nextToken"`
}

type putLogEventsRequest struct {
	LogGroupName  string                 `json:"logGroupName"`
	LogStreamName string                 `json:"logStreamName"`
	LogEvents     []backend.InputLogEvent `json:"logEvents"`
	SequenceToken string                 `json:"sequenceToken"`
}

type getLogEventsRequest struct {
	LogGroupName  string  `json:"logGroupName"`
	LogStreamName string  `json:"logStreamName"`
	StartTime     int64   `json:"startTime"`
	EndTime       int64   `json:"endTime"`
	Limit         int     `json:"limit"`
	NextToken     *string `json:"nextToken"`
	StartFromHead bool    `json:"startFromHead"`
}

type filterLogEventsRequest struct {
	LogGroupName   string   `json:"logGroupName"`
	LogStreamNames []string `json:"logStreamNames"`
	StartTime      int64    `json:"startTime"`
	EndTime        int64    `json:"endTime"`
	FilterPattern  string   `json:"filterPattern"`
	Interleaved    bool     `json:"interleaved"`
	Limit          int      `json:"limit"`
	NextToken      *int64   `json:"nextToken"`
}

type putRetentionPolicyRequest struct {
	LogGroupName    string `json:"logGroupName"`
	RetentionInDays int32  `json:"retentionInDays"`
}

type deleteRetentionPolicyRequest struct {
	LogGroupName string `json:"logGroupName"`
}

type listTagsLogGroupRequest struct {
	LogGroupName string `json:"logGroupName"`
}

type tagLogGroupRequest struct {
	LogGroupName string            `json:"logGroupName"`
	Tags         map[string]string `json:"tags"`
}

type untagLogGroupRequest struct {
	LogGroupName string   `json:"logGroupName"`
	Tags         []string `json:"tags"`
}

type putMetricFilterRequest struct {
	FilterName            string                               `json:"filterName"`
	FilterPattern         string                               `json:"filterPattern"`
	LogGroupName          string                               `json:"logGroupName"`
	MetricTransformations []metricfilters.MetricTransformation `json:"metricTransformations"`
}

type describeMetricFiltersRequest struct {
	FilterNamePrefix *string `json:"filterNamePrefix"`
	LogGroupName     *string `json:"logGroupName"`
	MetricName       *string `json:"metricName"`
	MetricNamespace  *string `json:"metricNamespace"`
	NextToken        *string `json:"nextToken"`
}

type deleteMetricFilterRequest struct {
	FilterName   *string `json:"filterName"`
	LogGroupName *string `json:"logGroupName"`
}

// Response shapes. nextToken fields for offset-paged listings are emitted
// as JSON numbers, or null once the listing is exhausted; the key is always
// present.

type describeLogGroupsResponse struct {
	LogGroups []backend.GroupDescription `json:"logGroups"`
	NextToken *int64                     `json:"nextToken"`
}

type describeLogStreamsResponse struct {
	LogStreams []backend.StreamDescription `json:"logStreams"`
	NextToken  *int64                      `json:"nextToken"`
}

type putLogEventsResponse struct {
	NextSequenceToken string `json:"nextSequenceToken"`
}

type getLogEventsResponse struct {
	Events            []backend.OutputLogEvent `json:"events"`
	NextBackwardToken string                   `json:"nextBackwardToken"`
	NextForwardToken  string                   `json:"nextForwardToken"`
}

type filterLogEventsResponse struct {
	Events             []backend.FilteredLogEvent  `json:"events"`
	NextToken          *int64                      `json:"nextToken"`
	SearchedLogStreams []backend.SearchedLogStream `json:"searchedLogStreams"`
}

type listTagsLogGroupResponse struct {
	Tags map[string]string `json:"tags"`
}

type describeMetricFiltersResponse struct {
	MetricFilters []metricfilters.Filter `json:"metricFilters"`
	NextToken     string                 `json:"nextToken"`
}
