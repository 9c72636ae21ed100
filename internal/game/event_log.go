package game

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	EventBufferSize    = 1024                   // Pending events kept before the oldest is dropped
	MaxEventsPerSec    = 10000                  // Global rate limit
	MaxEventsPerSource = 200                    // Per-combatant rate limit per second
	BatchFlushSize     = 64                     // Pending events that wake the writer early
	BatchFlushInterval = 100 * time.Millisecond // How often the writer flushes
)

// eventRing is a fixed-capacity FIFO that overwrites its oldest entry when full.
type eventRing struct {
	buf   []Event
	start int
	n     int
}

func newEventRing(capacity int) eventRing {
	return eventRing{buf: make([]Event, capacity)}
}

// push appends e and reports whether the oldest entry was overwritten.
func (r *eventRing) push(e Event) (overwrote bool) {
	if r.n == len(r.buf) {
		r.start = (r.start + 1) % len(r.buf)
		r.n--
		overwrote = true
	}
	r.buf[(r.start+r.n)%len(r.buf)] = e
	r.n++
	return overwrote
}

// drain appends every pending entry to dst in order and empties the ring.
func (r *eventRing) drain(dst []Event) []Event {
	for i := 0; i < r.n; i++ {
		dst = append(dst, r.buf[(r.start+i)%len(r.buf)])
	}
	r.start, r.n = 0, 0
	return dst
}

// EventLog appends match events to a JSONL file from a background writer.
// Emit never blocks on I/O: events are rate limited, then queued in a bounded
// ring that sheds its oldest entry under backpressure.
type EventLog struct {
	mu        sync.Mutex
	ring      eventRing
	seq       uint64
	global    *rate.Limiter
	perSource map[uint32]*rate.Limiter // keyed by combatant id; never larger than the registry

	running atomic.Bool
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	stopped sync.Once

	file *os.File

	dropped atomic.Uint64
	total   atomic.Uint64
}

// NewEventLog creates an idle event log. Emit drops everything until Start.
func NewEventLog() *EventLog {
	return &EventLog{
		ring:      newEventRing(EventBufferSize),
		global:    rate.NewLimiter(MaxEventsPerSec, MaxEventsPerSec/10),
		perSource: make(map[uint32]*rate.Limiter),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start opens filePath for append and launches the writer. An empty path keeps
// counting and rate limiting but writes nothing.
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		el.file = f
	}

	el.running.Store(true)
	go el.writerLoop()
	return nil
}

// Stop flushes everything still queued and closes the file.
func (el *EventLog) Stop() {
	el.stopped.Do(func() {
		if !el.running.Swap(false) {
			return
		}
		close(el.stop)
		<-el.done
	})
}

// Emit queues event. It returns false when the log is stopped or the event was
// rate limited.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}
	if !el.global.Allow() {
		el.dropped.Add(1)
		return false
	}

	el.mu.Lock()
	if event.SourceID != 0 {
		lim, ok := el.perSource[event.SourceID]
		if !ok {
			lim = rate.NewLimiter(MaxEventsPerSource, MaxEventsPerSource/10)
			el.perSource[event.SourceID] = lim
		}
		if !lim.Allow() {
			el.mu.Unlock()
			el.dropped.Add(1)
			return false
		}
	}

	el.seq++
	event.Sequence = el.seq
	if el.ring.push(event) {
		el.dropped.Add(1)
	}
	pending := el.ring.n
	el.mu.Unlock()

	el.total.Add(1)
	if pending >= BatchFlushSize {
		select {
		case el.wake <- struct{}{}:
		default:
		}
	}
	return true
}

// EmitSimple builds and queues an event.
func (el *EventLog) EmitSimple(eventType EventType, tickNum uint64, matchTime int64, sourceID CombatantID, payload interface{}) bool {
	return el.Emit(NewEvent(eventType, tickNum, matchTime, sourceID, payload))
}

func (el *EventLog) writerLoop() {
	defer close(el.done)

	var w *bufio.Writer
	var enc *json.Encoder
	if el.file != nil {
		w = bufio.NewWriter(el.file)
		enc = json.NewEncoder(w)
	}

	ticker := time.NewTicker(BatchFlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, BatchFlushSize)
	flush := func() {
		el.mu.Lock()
		batch = el.ring.drain(batch[:0])
		el.mu.Unlock()
		if w == nil || len(batch) == 0 {
			return
		}
		for i := range batch {
			enc.Encode(&batch[i])
		}
		w.Flush()
	}

	for {
		select {
		case <-ticker.C:
			flush()
		case <-el.wake:
			flush()
		case <-el.stop:
			flush()
			if el.file != nil {
				el.file.Close()
			}
			return
		}
	}
}

// GetStats returns event log counters for monitoring
func (el *EventLog) GetStats() map[string]interface{} {
	el.mu.Lock()
	pending := el.ring.n
	el.mu.Unlock()

	return map[string]interface{}{
		"total":   el.total.Load(),
		"dropped": el.dropped.Load(),
		"pending": pending,
		"running": el.running.Load(),
	}
}

// GetDroppedCount returns the number of dropped events
func (el *EventLog) GetDroppedCount() uint64 {
	return el.dropped.Load()
}

// GetTotalCount returns the number of events accepted
func (el *EventLog) GetTotalCount() uint64 {
	return el.total.Load()
}
