package log

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType represents classification of an event.
type EventType string

const (
	LLMInput      EventType = "LLM_INPUT"
	LLMOutput     EventType = "LLM_OUTPUT"
	RewriteInput  EventType = "REWRITE_INPUT"
	RewriteOutput EventType = "REWRITE_OUTPUT"
	RewriteError  EventType = "REWRITE_ERROR"
	HistoryRecord EventType = "HISTORY_RECORD"
	HistoryClear  EventType = "HISTORY_CLEAR"
)

type Event struct {
	Time      time.Time   `json:"ts"`
	EventType EventType   `json:"eventtype"`
	Payload   interface{} `json:"p"`
}

// Collector collects events and fans them out to subscribers.
type Collector struct {
	mu   sync.RWMutex
	subs []chan Event
}

var Default = &Collector{}

// Publish sends an event to all subscribers of the Default collector (non-blocking).
func Publish(eventType EventType, payload interface{}) {
	Default.Publish(Event{Time: time.Now(), EventType: eventType, Payload: payload})
}

func (c *Collector) Publish(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a receive-only channel for events. buf is channel size.
func (c *Collector) Subscribe(buf int) <-chan Event {
	ch := make(chan Event, buf)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe detaches and closes a channel obtained from Subscribe.
func (c *Collector) Unsubscribe(ch <-chan Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sub := range c.subs {
		if sub == ch {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// FileSink writes every event (JSON encoded) to w, filtering by event types if
// provided. The returned function detaches the sink and waits for pending
// events to be written.
func FileSink(w io.Writer, filters ...EventType) func() {
	return Default.Sink(w, filters...)
}

// Sink attaches a JSON lines writer to the collector.
func (c *Collector) Sink(w io.Writer, filters ...EventType) func() {
	want := map[EventType]bool{}
	for _, f := range filters {
		want[f] = true
	}
	events := c.Subscribe(100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		enc := json.NewEncoder(w)
		for ev := range events {
			if len(want) > 0 && !want[ev.EventType] {
				continue
			}
			_ = enc.Encode(ev)
		}
	}()
	return func() {
		c.Unsubscribe(events)
		<-done
	}
}
