package events

import (
	"log"
	"sync"
)

// Type names one engine event stream.
type Type string

const (
	BoostActivated Type = "boost.activated"
	BoostExpired   Type = "boost.expired"
)

// ActivatedPayload is published after an activation transaction commits.
type ActivatedPayload struct {
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
	BoostID  string `json:"boost_id"`
	PerkID   string `json:"perk_id"`
}

// ExpiredPayload is published after a boost is retired (sweep, explicit
// expire, or exhaustion of its last use).
type ExpiredPayload struct {
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
	BoostID  string `json:"boost_id"`
	PerkID   string `json:"perk_id"`
	PerkName string `json:"perk_name"`
}

// Handler receives one published event.
type Handler func(eventType Type, payload interface{})

// Bus is an in-process publish/subscribe fan-out. Dispatch is synchronous
// and in subscription order, so within one process subscribers observe
// events in emission order. There is no persistence or replay: a handler
// subscribed after an event fires has missed it permanently, which is why
// state-determining logic must re-read the store instead of listening here.
//
// The bus is owned by the composition root (main), not a package singleton,
// so tests inject a fresh one per case.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish dispatches the payload to every subscriber of the type, in the
// order they subscribed. A panicking handler is recovered and logged so one
// bad subscriber cannot take down the publisher.
func (b *Bus) Publish(eventType Type, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[eventType]))
	copy(hs, b.handlers[eventType])
	b.mu.RUnlock()

	for _, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("❌ [BUS] handler panic on %s: %v", eventType, r)
				}
			}()
			h(eventType, payload)
		}()
	}
}
