// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

import (
	"fmt"
	"sort"
	"strings"
)

// LogGroup exclusively owns its streams; deleting the group destroys them
// all. streamOrder remembers creation order because multi-stream filtering
// concatenates streams in that order.
type LogGroup struct {
	arn             string
	creationTime    int64
	name            string
	region          string
	tags            map[string]string
	retentionInDays *int32
	streams         map[string]*LogStream
	streamOrder     []string
}

func newLogGroup(region, name string, tags map[string]string, now int64) *LogGroup {
	return &LogGroup{
		arn:          fmt.Sprintf("arn:aws:logs:%s:1:log-group:%s", region, name),
		creationTime: now,
		name:         name,
		region:       region,
		tags:         copyTags(tags),
		streams:      make(map[string]*LogStream),
	}
}

// copyTags preserves nil-ness: a group created without tags is
// distinguishable from one created with an empty tag map.
func copyTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

func (g *LogGroup) createLogStream(name string, streamID uint64, now int64) error {
	if _, ok := g.streams[name]; ok {
		return streamAlreadyExists()
	}
	g.streams[name] = newLogStream(g.region, g.name, name, streamID, now)
	g.streamOrder = append(g.streamOrder, name)
	return nil
}

func (g *LogGroup) deleteLogStream(name string) error {
	if _, ok := g.streams[name]; !ok {
		return streamNotFound()
	}
	delete(g.streams, name)
	for i, n := range g.streamOrder {
		if n == name {
			g.streamOrder = append(g.streamOrder[:i], g.streamOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (g *LogGroup) stream(name string) (*LogStream, error) {
	s, ok := g.streams[name]
	if !ok {
		return nil, streamNotFound()
	}
	return s, nil
}

// describeLogStreams lists stream summaries matching the prefix, sorted by
// name or by derived last-event timestamp (absent counts as zero), with
// integer-offset pagination. Descending inverts the comparison rather than
// reversing the result, so equal keys keep their original order.
func (g *LogGroup) describeLogStreams(p DescribeLogStreamsParams) ([]StreamDescription, *int64, error) {
	offset, err := pageOffset(p.NextToken)
	if err != nil {
		return nil, nil, err
	}

	descriptions := make([]StreamDescription, 0, len(g.streamOrder))
	for _, name := range g.streamOrder {
		if strings.HasPrefix(name, p.Prefix) {
			descriptions = append(descriptions, g.streams[name].describe())
		}
	}

	byName := p.OrderBy != OrderByLastEventTime
	sort.SliceStable(descriptions, func(i, j int) bool {
		if byName {
			if p.Descending {
				return descriptions[i].LogStreamName > descriptions[j].LogStreamName
			}
			return descriptions[i].LogStreamName < descriptions[j].LogStreamName
		}
		if p.Descending {
			return lastEventOrZero(descriptions[i]) > lastEventOrZero(descriptions[j])
		}
		return lastEventOrZero(descriptions[i]) < lastEventOrZero(descriptions[j])
	})

	page, next := paginate(descriptions, offset, p.Limit)
	return page, next, nil
}

func lastEventOrZero(d StreamDescription) int64 {
	if d.LastEventTimestamp == nil {
		return 0
	}
	return *d.LastEventTimestamp
}

// filterLogEvents scans the selected streams in creation order, optionally
// re-sorts the concatenation by timestamp, and pages with a plain integer
// offset. Filter-pattern evaluation is intentionally not implemented.
func (g *LogGroup) filterLogEvents(p FilterLogEventsParams) (FilterLogEventsResult, error) {
	if p.FilterPattern != "" {
		return FilterLogEventsResult{}, unsupported("filterPattern is not yet implemented")
	}
	offset, err := pageOffset(p.NextToken)
	if err != nil {
		return FilterLogEventsResult{}, err
	}

	wanted := make(map[string]bool, len(p.LogStreamNames))
	for _, name := range p.LogStreamNames {
		wanted[name] = true
	}

	var selected []*LogStream
	for _, name := range g.streamOrder {
		if len(wanted) == 0 || wanted[name] {
			selected = append(selected, g.streams[name])
		}
	}

	events := []FilteredLogEvent{}
	for _, s := range selected {
		events = append(events, s.filterLogEvents(p.StartTime, p.EndTime)...)
	}
	if p.Interleaved {
		sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp < events[j].Timestamp })
	}

	page, next := paginate(events, offset, p.Limit)

	searched := make([]SearchedLogStream, 0, len(selected))
	for _, s := range selected {
		searched = append(searched, SearchedLogStream{LogStreamName: s.name, SearchedCompletely: true})
	}

	return FilterLogEventsResult{Events: page, NextToken: next, SearchedLogStreams: searched}, nil
}

// describe sums storedBytes over the owned streams. RetentionInDays is only
// rendered when a positive policy is set; zero counts as never-expire.
func (g *LogGroup) describe() GroupDescription {
	var stored int64
	for _, s := range g.streams {
		stored += s.storedBytes
	}
	d := GroupDescription{
		Arn:          g.arn,
		CreationTime: g.creationTime,
		LogGroupName: g.name,
		StoredBytes:  stored,
	}
	if g.retentionInDays != nil && *g.retentionInDays != 0 {
		days := *g.retentionInDays
		d.RetentionInDays = &days
	}
	return d
}

func (g *LogGroup) setRetentionPolicy(days *int32) {
	g.retentionInDays = days
}

func (g *LogGroup) listTags() map[string]string {
	out := make(map[string]string, len(g.tags))
	for k, v := range g.tags {
		out[k] = v
	}
	return out
}

func (g *LogGroup) tag(tags map[string]string) {
	if g.tags == nil {
		g.tags = make(map[string]string, len(tags))
	}
	for k, v := range tags {
		g.tags[k] = v
	}
}

// untag is a no-op when the group never had tags.
func (g *LogGroup) untag(keys []string) {
	if g.tags == nil {
		return
	}
	for _, k := range keys {
		delete(g.tags, k)
	}
}
