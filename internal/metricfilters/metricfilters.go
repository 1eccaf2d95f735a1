// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metricfilters is the metric-filter collaborator: the log backend
// holds one Store per region and forwards filter calls to it unmodified.
// Filter patterns are stored verbatim, never evaluated.
package metricfilters

import "strings"

// MetricTransformation maps matched events onto a metric.
type MetricTransformation struct {
	DefaultValue    *float64 `json:"defaultValue,omitempty"`
	MetricName      string   `json:"metricName"`
	MetricNamespace string   `json:"metricNamespace"`
	MetricValue     string   `json:"metricValue"`
}

// Filter is one stored metric filter.
type Filter struct {
	FilterName            string                 `json:"filterName"`
	FilterPattern         string                 `json:"filterPattern"`
	LogGroupName          string                 `json:"logGroupName"`
	MetricTransformations []MetricTransformation `json:"metricTransformations"`
}

// Store keeps filters in insertion order.
type Store struct {
	filters []Filter
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) AddFilter(name, pattern, groupName string, transformations []MetricTransformation) {
	s.filters = append(s.filters, Filter{
		FilterName:            name,
		FilterPattern:         pattern,
		LogGroupName:          groupName,
		MetricTransformations: transformations,
	})
}

// MatchingFilters returns filters whose name starts with prefix and whose
// group equals groupName; an empty argument matches everything.
func (s *Store) MatchingFilters(prefix, groupName string) []Filter {
	out := []Filter{}
	for _, f := range s.filters {
		if prefix != "" && !strings.HasPrefix(f.FilterName, prefix) {
			continue
		}
		if groupName != "" && f.LogGroupName != groupName {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DeleteFilter drops filters matching the given name and group; empty
// arguments match everything, and deleting a filter that does not exist is
// a no-op.
func (s *Store) DeleteFilter(name, groupName string) {
	kept := make([]Filter, 0, len(s.filters))
	for _, f := range s.filters {
		nameMatches := name == "" || f.FilterName == name
		groupMatches := groupName == "" || f.LogGroupName == groupName
		if nameMatches && groupMatches {
			continue
		}
		kept = append(kept, f)
	}
	s.filters = kept
}
