// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

import (
	"fmt"
	"sort"
	"strconv"
)

// logEvent is immutable once ingested. It is destroyed only when its owning
// stream is deleted.
type logEvent struct {
	eventID       uint64
	ingestionTime int64
	timestamp     int64
	message       string
}

func (e logEvent) toOutput() OutputLogEvent {
	return OutputLogEvent{
		IngestionTime: e.ingestionTime,
		Message:       e.message,
		Timestamp:     e.timestamp,
	}
}

func (e logEvent) toFiltered(streamName string) FilteredLogEvent {
	return FilteredLogEvent{
		EventID:       strconv.FormatUint(e.eventID, 10),
		IngestionTime: e.ingestionTime,
		LogStreamName: streamName,
		Message:       e.message,
		Timestamp:     e.timestamp,
	}
}

// LogStream owns an append-only, insertion-ordered sequence of events.
// Chronological ordering is imposed at read time, never at ingestion.
type LogStream struct {
	arn                 string
	creationTime        int64
	name                string
	storedBytes         int64
	lastIngestionTime   int64
	uploadSequenceToken uint64
	events              []logEvent
}

func newLogStream(region, group, name string, streamID uint64, now int64) *LogStream {
	// The stream counter sits in the account position of the ARN; the
	// original service emulation did the same and clients key off the
	// suffix only.
	return &LogStream{
		arn:          fmt.Sprintf("arn:aws:logs:%s:%d:log-group:%s:log-stream:%s", region, streamID, group, name),
		creationTime: now,
		name:         name,
	}
}

// putLogEvents appends one event per input item, preserving input order.
// The whole batch shares a single ingestion time. The returned sequence
// token is the incremented upload counter, zero-padded to 56 digits. No
// sequence-token validation happens here: every put succeeds.
func (s *LogStream) putLogEvents(now int64, eventIDs *counter, events []InputLogEvent) string {
	s.lastIngestionTime = now
	for _, in := range events {
		s.storedBytes += int64(len(in.Message))
		s.events = append(s.events, logEvent{
			eventID:       eventIDs.next(),
			ingestionTime: now,
			timestamp:     in.Timestamp,
			message:       in.Message,
		})
	}
	s.uploadSequenceToken++
	return fmt.Sprintf("%056d", s.uploadSequenceToken)
}

// describe recomputes the first/last event timestamps from the current
// contents, so a describe right after an out-of-order insert reflects it.
// The events-present block is withheld while the stream is empty.
func (s *LogStream) describe() StreamDescription {
	d := StreamDescription{
		Arn:           s.arn,
		CreationTime:  s.creationTime,
		LogStreamName: s.name,
		StoredBytes:   s.storedBytes,
	}
	if len(s.events) == 0 {
		return d
	}
	first, last := s.events[0].timestamp, s.events[0].timestamp
	for _, e := range s.events[1:] {
		if e.timestamp < first {
			first = e.timestamp
		}
		if e.timestamp > last {
			last = e.timestamp
		}
	}
	ingestion := s.lastIngestionTime
	token := strconv.FormatUint(s.uploadSequenceToken, 10)
	d.FirstEventTimestamp = &first
	d.LastEventTimestamp = &last
	d.LastIngestionTime = &ingestion
	d.UploadSequenceToken = &token
	return d
}

// eventsInRange filters by the inclusive [startTime, endTime] range (zero
// bounds are open) and sorts ascending by timestamp. The sort is stable so
// equal timestamps keep insertion order.
func (s *LogStream) eventsInRange(startTime, endTime int64) []logEvent {
	var out []logEvent
	for _, e := range s.events {
		if startTime != 0 && e.timestamp < startTime {
			continue
		}
		if endTime != 0 && e.timestamp > endTime {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].timestamp < out[j].timestamp })
	return out
}

// getLogEvents pages through the filtered, sorted view with the
// bidirectional index-anchored cursor. A forward token resumes after its
// index, a backward token resumes before it, and the boundary cases return
// an empty page whose two tokens are pinned to the same index so repeated
// calls at the edge are idempotent.
func (s *LogStream) getLogEvents(p GetLogEventsParams) (GetLogEventsResult, error) {
	events := s.eventsInRange(p.StartTime, p.EndTime)

	limitIndex := p.Limit - 1
	finalIndex := len(events) - 1

	var startIndex, endIndex int
	if p.NextToken == nil {
		if p.StartFromHead {
			startIndex = 0
			endIndex = startIndex + limitIndex
		} else {
			endIndex = finalIndex
			startIndex = endIndex - limitIndex
		}
	} else {
		direction, index, err := parseEventToken(*p.NextToken)
		if err != nil {
			return GetLogEventsResult{}, err
		}
		switch direction {
		case forwardDirection:
			startIndex = index + 1
			endIndex = startIndex + limitIndex
		case backwardDirection:
			endIndex = index - 1
			startIndex = endIndex - limitIndex
		default:
			return GetLogEventsResult{}, invalidParameter(invalidNextTokenMessage)
		}
	}

	if startIndex < 0 {
		startIndex = 0
	} else if startIndex > finalIndex {
		return emptyEventPage(finalIndex), nil
	}

	if endIndex > finalIndex {
		endIndex = finalIndex
	} else if endIndex < 0 {
		return emptyEventPage(0), nil
	}

	page := make([]OutputLogEvent, 0, endIndex-startIndex+1)
	for _, e := range events[startIndex : endIndex+1] {
		page = append(page, e.toOutput())
	}
	return GetLogEventsResult{
		Events:            page,
		NextBackwardToken: formatEventToken(backwardDirection, startIndex),
		NextForwardToken:  formatEventToken(forwardDirection, endIndex),
	}, nil
}

func emptyEventPage(index int) GetLogEventsResult {
	return GetLogEventsResult{
		Events:            []OutputLogEvent{},
		NextBackwardToken: formatEventToken(backwardDirection, index),
		NextForwardToken:  formatEventToken(forwardDirection, index),
	}
}

// filterLogEvents converts the stream's events in range to filter form,
// ascending by timestamp within this stream.
func (s *LogStream) filterLogEvents(startTime, endTime int64) []FilteredLogEvent {
	events := s.eventsInRange(startTime, endTime)
	out := make([]FilteredLogEvent, 0, len(events))
	for _, e := range events {
		out = append(out, e.toFiltered(s.name))
	}
	return out
}
