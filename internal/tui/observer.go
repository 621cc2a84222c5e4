package tui

import "github.com/mmcdole/reel/internal/domain"

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.Change
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.Change) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnChange sends the change to the channel (non-blocking if full).
// The model re-reads snapshots on every change, so a dropped one is
// covered by the next.
func (o *ChannelObserver) OnChange(change domain.Change) {
	select {
	case o.ch <- change:
	default:
	}
}
