// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"mocklogs/internal/metricfilters"
)

// counter hands out monotonically increasing ids starting at zero. Ids are
// never reused, not even across Reset.
type counter struct {
	n uint64
}

func (c *counter) next() uint64 {
	v := c.n
	c.n++
	return v
}

// Backend is the top-level registry for one region: it exclusively owns
// the log groups, the metric-filter collaborator and the id counters. A
// single mutex serializes every operation because the HTTP surface serves
// requests concurrently.
type Backend struct {
	mu         sync.Mutex
	region     string
	clock      Clock
	groups     map[string]*LogGroup
	groupOrder []string
	filters    *metricfilters.Store
	eventIDs   counter
	streamIDs  counter
}

func NewBackend(region string, clock Clock) *Backend {
	if clock == nil {
		clock = SystemClock
	}
	b := &Backend{region: region, clock: clock}
	b.initState()
	return b
}

func (b *Backend) initState() {
	b.groups = make(map[string]*LogGroup)
	b.groupOrder = nil
	b.filters = metricfilters.NewStore()
}

// Region returns the region identifier this backend serves.
func (b *Backend) Region() string { return b.region }

// Reset discards every group, stream and event for the region and starts
// empty. The id counters keep increasing so event ids are never reused.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initState()
}

func (b *Backend) nowMillis() int64 {
	return b.clock.Now().UnixMilli()
}

func (b *Backend) group(name string) (*LogGroup, error) {
	g, ok := b.groups[name]
	if !ok {
		return nil, groupNotFound()
	}
	return g, nil
}

func (b *Backend) addGroup(name string, tags map[string]string) {
	b.groups[name] = newLogGroup(b.region, name, tags, b.nowMillis())
	b.groupOrder = append(b.groupOrder, name)
}

// CreateLogGroup registers a new group. Names are unique per region.
func (b *Backend) CreateLogGroup(name string, tags map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.groups[name]; ok {
		return groupAlreadyExists()
	}
	b.addGroup(name, tags)
	return nil
}

// EnsureLogGroup creates the group if missing and otherwise leaves it
// untouched.
func (b *Backend) EnsureLogGroup(name string, tags map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.groups[name]; ok {
		return
	}
	b.addGroup(name, tags)
}

// DeleteLogGroup destroys the group and, transitively, all of its streams
// and events.
func (b *Backend) DeleteLogGroup(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.groups[name]; !ok {
		return groupNotFound()
	}
	delete(b.groups, name)
	for i, n := range b.groupOrder {
		if n == name {
			b.groupOrder = append(b.groupOrder[:i], b.groupOrder[i+1:]...)
			break
		}
	}
	return nil
}

// DescribeLogGroups lists group summaries matching the prefix, newest
// creation time first, with integer-offset pagination.
func (b *Backend) DescribeLogGroups(p DescribeLogGroupsParams) ([]GroupDescription, *int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := normalizeLimit(&p.Limit, DefaultDescribeLimit, MaxDescribeLimit); err != nil {
		return nil, nil, err
	}
	offset, err := pageOffset(p.NextToken)
	if err != nil {
		return nil, nil, err
	}

	descriptions := make([]GroupDescription, 0, len(b.groupOrder))
	for _, name := range b.groupOrder {
		if strings.HasPrefix(name, p.Prefix) {
			descriptions = append(descriptions, b.groups[name].describe())
		}
	}
	sort.SliceStable(descriptions, func(i, j int) bool {
		return descriptions[i].CreationTime > descriptions[j].CreationTime
	})

	page, next := paginate(descriptions, offset, p.Limit)
	return page, next, nil
}

// CreateLogStream adds a stream to an existing group. Names are unique per
// group.
func (b *Backend) CreateLogStream(groupName, streamName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	return g.createLogStream(streamName, b.streamIDs.next(), b.nowMillis())
}

func (b *Backend) DeleteLogStream(groupName, streamName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	return g.deleteLogStream(streamName)
}

// DescribeLogStreams validates the sort order and delegates to the group.
// Ordering by last event time cannot be combined with a name prefix.
func (b *Backend) DescribeLogStreams(groupName string, p DescribeLogStreamsParams) ([]StreamDescription, *int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.OrderBy == "" {
		p.OrderBy = OrderByLogStreamName
	}
	if p.OrderBy != OrderByLogStreamName && p.OrderBy != OrderByLastEventTime {
		return nil, nil, invalidParameter(fmt.Sprintf("The specified orderBy parameter %q is invalid.", p.OrderBy))
	}
	if p.OrderBy == OrderByLastEventTime && p.Prefix != "" {
		return nil, nil, invalidParameter("Cannot order by LastEventTime with a logStreamNamePrefix.")
	}
	if err := normalizeLimit(&p.Limit, DefaultDescribeLimit, MaxDescribeLimit); err != nil {
		return nil, nil, err
	}
	g, err := b.group(groupName)
	if err != nil {
		return nil, nil, err
	}
	return g.describeLogStreams(p)
}

// PutLogEvents appends a batch to the stream and returns the next sequence
// token. The supplied sequence token is accepted without validation, a
// known relaxation versus the real service.
func (b *Backend) PutLogEvents(groupName, streamName string, events []InputLogEvent, sequenceToken string) (string, error) {
	_ = sequenceToken
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return "", err
	}
	s, err := g.stream(streamName)
	if err != nil {
		return "", err
	}
	return s.putLogEvents(b.nowMillis(), &b.eventIDs, events), nil
}

// GetLogEvents pages one stream's events with the bidirectional cursor.
func (b *Backend) GetLogEvents(groupName, streamName string, p GetLogEventsParams) (GetLogEventsResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := normalizeLimit(&p.Limit, DefaultEventLimit, MaxEventLimit); err != nil {
		return GetLogEventsResult{}, err
	}
	g, err := b.group(groupName)
	if err != nil {
		return GetLogEventsResult{}, err
	}
	s, err := g.stream(streamName)
	if err != nil {
		return GetLogEventsResult{}, err
	}
	return s.getLogEvents(p)
}

// FilterLogEvents scans events across the group's streams.
func (b *Backend) FilterLogEvents(groupName string, p FilterLogEventsParams) (FilterLogEventsResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := normalizeLimit(&p.Limit, DefaultEventLimit, MaxEventLimit); err != nil {
		return FilterLogEventsResult{}, err
	}
	g, err := b.group(groupName)
	if err != nil {
		return FilterLogEventsResult{}, err
	}
	return g.filterLogEvents(p)
}

// PutRetentionPolicy sets the group's retention in days.
func (b *Backend) PutRetentionPolicy(groupName string, days int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	g.setRetentionPolicy(&days)
	return nil
}

// DeleteRetentionPolicy reverts the group to never-expire; the field then
// disappears from descriptions.
func (b *Backend) DeleteRetentionPolicy(groupName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	g.setRetentionPolicy(nil)
	return nil
}

func (b *Backend) ListTagsLogGroup(groupName string) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return nil, err
	}
	return g.listTags(), nil
}

// TagLogGroup merges the given tags into the group's tag map.
func (b *Backend) TagLogGroup(groupName string, tags map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	g.tag(tags)
	return nil
}

// UntagLogGroup removes the listed keys; unknown keys are ignored.
func (b *Backend) UntagLogGroup(groupName string, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, err := b.group(groupName)
	if err != nil {
		return err
	}
	g.untag(keys)
	return nil
}

// PutMetricFilter forwards to the metric-filter collaborator unmodified.
func (b *Backend) PutMetricFilter(filterName, filterPattern, groupName string, transformations []metricfilters.MetricTransformation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters.AddFilter(filterName, filterPattern, groupName, transformations)
}

func (b *Backend) DescribeMetricFilters(prefix, groupName string) []metricfilters.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters.MatchingFilters(prefix, groupName)
}

func (b *Backend) DeleteMetricFilter(filterName, groupName string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters.DeleteFilter(filterName, groupName)
}

// DumpState snapshots the region for the debug surface: groups in creation
// order, each with its streams in creation order.
func (b *Backend) DumpState() StateSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := StateSnapshot{Region: b.region, LogGroups: make([]GroupSnapshot, 0, len(b.groupOrder))}
	for _, name := range b.groupOrder {
		g := b.groups[name]
		gs := GroupSnapshot{
			GroupDescription: g.describe(),
			Tags:             copyTags(g.tags),
			LogStreams:       make([]StreamSnapshot, 0, len(g.streamOrder)),
		}
		for _, streamName := range g.streamOrder {
			s := g.streams[streamName]
			gs.LogStreams = append(gs.LogStreams, StreamSnapshot{
				StreamDescription: s.describe(),
				EventCount:        len(s.events),
			})
		}
		snapshot.LogGroups = append(snapshot.LogGroups, gs)
	}
	return snapshot
}

func normalizeLimit(limit *int, def, max int) error {
	if *limit <= 0 {
		*limit = def
		return nil
	}
	if *limit > max {
		return invalidParameter(fmt.Sprintf(
			"1 validation error detected: Value '%d' at 'limit' failed to satisfy constraint: Member must have value less than or equal to %d", *limit, max))
	}
	return nil
}
