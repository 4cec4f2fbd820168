/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"sort"
	"time"

	"jescher/internal/gesture"
)

// Clock is a virtual gesture.Host. Deferred callbacks run only when the clock
// is advanced past their deadline, in deadline order.
type Clock struct {
	now           time.Duration
	seq           int
	timers        []*clockTimer
	invalidations int
}

type clockTimer struct {
	at   time.Duration
	seq  int
	f    func()
	done bool
}

func (t *clockTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *Clock) Now() time.Duration { return c.now }
func (c *Clock) Invalidations() int { return c.invalidations }
func (c *Clock) Invalidate()        { c.invalidations++ }

func (c *Clock) AfterFunc(d time.Duration, f func()) gesture.Timer {
	c.seq++
	t := &clockTimer{at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Pending is the number of timers that have neither fired nor been stopped.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// AdvanceTo moves the clock forward to t, firing due timers. Moving backwards is a no-op.
func (c *Clock) AdvanceTo(t time.Duration) {
	for {
		next := c.nextDue(t)
		if next == nil {
			break
		}
		c.now = max(c.now, next.at)
		next.done = true
		next.f()
	}
	c.now = max(c.now, t)
	c.compact()
}

func (c *Clock) nextDue(limit time.Duration) *clockTimer {
	var due []*clockTimer
	for _, t := range c.timers {
		if !t.done && t.at <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
}
