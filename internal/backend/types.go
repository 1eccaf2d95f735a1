// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

// Limits applied when a request leaves them unset, matching the service
// wire defaults.
const (
	DefaultDescribeLimit = 50
	MaxDescribeLimit     = 50
	DefaultEventLimit    = 10000
	MaxEventLimit        = 10000
)

// Sort orders accepted by DescribeLogStreams.
const (
	OrderByLogStreamName = "LogStreamName"
	OrderByLastEventTime = "LastEventTime"
)

// InputLogEvent is one item of a PutLogEvents batch.
type InputLogEvent struct {
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// OutputLogEvent is the GetLogEvents response form of an event. It carries
// no event id.
type OutputLogEvent struct {
	IngestionTime int64  `json:"ingestionTime"`
	Message       string `json:"message"`
	Timestamp     int64  `json:"timestamp"`
}

// FilteredLogEvent is the FilterLogEvents response form: the event id as a
// string plus the owning stream's name.
type FilteredLogEvent struct {
	EventID       string `json:"eventId"`
	IngestionTime int64  `json:"ingestionTime"`
	LogStreamName string `json:"logStreamName"`
	Message       string `json:"message"`
	Timestamp     int64  `json:"timestamp"`
}

// SearchedLogStream reports per-stream search completeness for
// FilterLogEvents. The emulator always finishes a full scan.
type SearchedLogStream struct {
	LogStreamName      string `json:"logStreamName"`
	SearchedCompletely bool   `json:"searchedCompletely"`
}

// StreamDescription is the DescribeLogStreams element. The four pointer
// fields form the events-present block: they are set together once the
// stream holds at least one event and omitted entirely otherwise.
type StreamDescription struct {
	Arn                 string  `json:"arn"`
	CreationTime        int64   `json:"creationTime"`
	FirstEventTimestamp *int64  `json:"firstEventTimestamp,omitempty"`
	LastEventTimestamp  *int64  `json:"lastEventTimestamp,omitempty"`
	LastIngestionTime   *int64  `json:"lastIngestionTime,omitempty"`
	LogStreamName       string  `json:"logStreamName"`
	StoredBytes         int64   `json:"storedBytes"`
	UploadSequenceToken *string `json:"uploadSequenceToken,omitempty"`
}

// GroupDescription is the DescribeLogGroups element. RetentionInDays is
// omitted when the group never expires.
type GroupDescription struct {
	Arn               string `json:"arn"`
	CreationTime      int64  `json:"creationTime"`
	LogGroupName      string `json:"logGroupName"`
	MetricFilterCount int    `json:"metricFilterCount"`
	RetentionInDays   *int32 `json:"retentionInDays,omitempty"`
	StoredBytes       int64  `json:"storedBytes"`
}

// GetLogEventsParams selects a window of one stream's events. A zero
// StartTime or EndTime leaves that side of the range unbounded. NextToken
// nil means a fresh query.
type GetLogEventsParams struct {
	StartTime     int64
	EndTime       int64
	Limit         int
	NextToken     *string
	StartFromHead bool
}

// GetLogEventsResult is one page of events plus the cursors anchoring it.
type GetLogEventsResult struct {
	Events            []OutputLogEvent
	NextBackwardToken string
	NextForwardToken  string
}

// DescribeLogStreamsParams filters and pages a group's stream summaries.
type DescribeLogStreamsParams struct {
	Prefix     string
	OrderBy    string
	Descending bool
	Limit      int
	NextToken  *int64
}

// DescribeLogGroupsParams filters and pages a region's group summaries.
type DescribeLogGroupsParams struct {
	Prefix    string
	Limit     int
	NextToken *int64
}

// FilterLogEventsParams selects events across a group's streams. An empty
// LogStreamNames set selects every stream.
type FilterLogEventsParams struct {
	LogStreamNames []string
	StartTime      int64
	EndTime        int64
	FilterPattern  string
	Interleaved    bool
	Limit          int
	NextToken      *int64
}

// FilterLogEventsResult is one page of the concatenated (and optionally
// interleaved) multi-stream scan. NextToken is nil once the scan is
// exhausted.
type FilterLogEventsResult struct {
	Events             []FilteredLogEvent
	NextToken          *int64
	SearchedLogStreams []SearchedLogStream
}

// StateSnapshot is the debug dump of one region's backend.
type StateSnapshot struct {
	Region    string          `json:"region"`
	LogGroups []GroupSnapshot `json:"logGroups"`
}

// GroupSnapshot extends the group description with tags and stream state.
type GroupSnapshot struct {
	GroupDescription
	Tags       map[string]string `json:"tags,omitempty"`
	LogStreams []StreamSnapshot  `json:"logStreams"`
}

// StreamSnapshot extends the stream description with the event count.
type StreamSnapshot struct {
	StreamDescription
	EventCount int `json:"eventCount"`
}
