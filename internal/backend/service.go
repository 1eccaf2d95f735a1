// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

import (
	"fmt"
	"sort"
)

// Service holds one Backend per supported region identifier. Regions are
// fully isolated namespaces: nothing is shared between them, and each has
// its own lifecycle.
type Service struct {
	backends map[string]*Backend
}

// NewService instantiates a backend for every region name up front, the
// way the emulated service partitions its state at process start.
func NewService(regionNames []string, clock Clock) *Service {
	s := &Service{backends: make(map[string]*Backend, len(regionNames))}
	for _, region := range regionNames {
		s.backends[region] = NewBackend(region, clock)
	}
	return s
}

// Backend resolves the registry for a region. Regions outside the
// configured partitions are rejected rather than lazily created.
func (s *Service) Backend(region string) (*Backend, error) {
	b, ok := s.backends[region]
	if !ok {
		return nil, invalidParameter(fmt.Sprintf("Region %q is not supported.", region))
	}
	return b, nil
}

// Regions lists the configured region identifiers, sorted.
func (s *Service) Regions() []string {
	out := make([]string, 0, len(s.backends))
	for region := range s.backends {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// ResetAll resets every region.
func (s *Service) ResetAll() {
	for _, b := range s.backends {
		b.Reset()
	}
}
