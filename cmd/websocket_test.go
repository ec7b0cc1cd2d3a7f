package main

import (
	"testing"
	"time"
)

func TestNotifyBookingChangedDoesNotBlock(t *testing.T) {
	ws := NewWebSocketManager()
	// no Run goroutine: nothing drains the hub, every send must still return
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			ws.NotifyBookingChanged("model-1", "user-1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyBookingChanged blocked while the hub was not draining")
	}
}
