// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

import (
	"fmt"
	"strconv"
)

// GetLogEvents cursors encode absolute positions in the currently filtered,
// sorted view of a stream: "<direction>/<index zero-padded to 56 digits>".
// The byte after the direction is a spacer and is never inspected, so a
// token like "fX00...42" still parses; this matches the service's tolerant
// parser. Page boundaries are only stable while the caller reuses the same
// time range across calls.

const (
	forwardDirection  = 'f'
	backwardDirection = 'b'
)

const invalidNextTokenMessage = "The specified nextToken is invalid."

func formatEventToken(direction byte, index int) string {
	return fmt.Sprintf("%c/%056d", direction, index)
}

// parseEventToken splits a cursor into direction byte and index. The
// direction comes back unvalidated; the pager decides which directions it
// accepts.
func parseEventToken(token string) (byte, int, error) {
	if len(token) < 3 {
		return 0, 0, invalidParameter(invalidNextTokenMessage)
	}
	index, err := strconv.ParseInt(token[2:], 10, 64)
	if err != nil {
		return 0, 0, invalidParameter(invalidNextTokenMessage)
	}
	return token[0], int(index), nil
}

// pageOffset resolves an integer offset token. Absent means start at zero.
func pageOffset(token *int64) (int64, error) {
	if token == nil {
		return 0, nil
	}
	if *token < 0 {
		return 0, invalidParameter(invalidNextTokenMessage)
	}
	return *token, nil
}

// paginate slices one page out of items and returns the follow-up offset
// token, nil once the page reaches the end of the collection.
func paginate[T any](items []T, offset int64, limit int) ([]T, *int64) {
	start := offset
	if start > int64(len(items)) {
		start = int64(len(items))
	}
	end := start + int64(limit)
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	page := items[start:end]
	if page == nil {
		page = make([]T, 0)
	}
	next := offset + int64(limit)
	if next >= int64(len(items)) {
		return page, nil
	}
	return page, &next
}
