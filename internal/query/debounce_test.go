// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	var fired []string

	record := func(v string) func() {
		return func() {
			mu.Lock()
			fired = append(fired, v)
			mu.Unlock()
		}
	}

	// Three triggers inside the quiet period: only the last one runs.
	d.Trigger(record("a"))
	d.Trigger(record("ab"))
	d.Trigger(record("abc"))

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("fired %d times, want 1 (%v)", len(fired), fired)
	}
	if fired[0] != "abc" {
		t.Errorf("fired %q, want the last trigger %q", fired[0], "abc")
	}
}

func TestDebouncerSeparateBurstsFireSeparately(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	bump := func() {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.Trigger(bump)
	time.Sleep(60 * time.Millisecond)
	d.Trigger(bump)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Errorf("fired %d times, want 2", count)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	d.Trigger(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("fired %d times after Stop, want 0", count)
	}
}
