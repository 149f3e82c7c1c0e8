package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNavigate     EventType = "navigate"
	EventEvict        EventType = "evict"
	EventDispose      EventType = "dispose"
	EventOverlayOpen  EventType = "overlay_open"
	EventOverlayClose EventType = "overlay_close"
)

// NavigationEvent describes a single observable step of the state machine.
type NavigationEvent struct {
	Timestamp   time.Time      `json:"timestamp"`
	Type        EventType      `json:"type"`
	NavigatorID string         `json:"navigator_id,omitempty"`
	Mode        NavigationMode `json:"mode,omitempty"`
	From        ScreenID       `json:"from,omitempty"`
	To          ScreenID       `json:"to,omitempty"`
	Screen      ScreenID       `json:"screen,omitempty"` // Subject of evict/dispose/overlay events
	HistoryLen  int            `json:"history_len"`
}

// LifecycleHooks defines callbacks for navigation observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnNavigate     func(context.Context, *NavigationEvent)
	OnEvict        func(context.Context, *NavigationEvent)
	OnDispose      func(context.Context, *NavigationEvent)
	OnOverlayOpen  func(context.Context, *NavigationEvent)
	OnOverlayClose func(context.Context, *NavigationEvent)
}
