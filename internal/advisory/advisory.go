// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package advisory collects user-visible advisory messages produced
// while building geometry, such as data truncation notices.
//
// Messages are de-duplicated so a condition hit on every row of a
// render pass is reported to the user once.
package advisory

import "sync"

// Queue is a de-duplicating message queue. The zero value is ready
// to use and a Queue is safe for concurrent use.
type Queue struct {
	mu   sync.Mutex
	seen map[string]bool
	msgs []string
}

// Add appends msg to q unless an identical message was already
// added. It reports whether msg was new.
func (q *Queue) Add(msg string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seen[msg] {
		return false
	}
	if q.seen == nil {
		q.seen = make(map[string]bool)
	}
	q.seen[msg] = true
	q.msgs = append(q.msgs, msg)
	return true
}

// Messages returns the messages added to q, in order.
func (q *Queue) Messages() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.msgs...)
}

// Reset discards all messages.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seen, q.msgs = nil, nil
}
