package main

import (
	"context"
	"log"
	"time"

	"fishhook/internal/services"
)

const (
	bookingExpirerTimeout = 30 * time.Second
)

func startBookingExpirer(ctx context.Context, svc *services.BookingService, interval time.Duration, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, bookingExpirerTimeout)
			expired, err := svc.ExpirePending(runCtx, time.Now().UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("booking expirer: sweep failed: %v", err)
				}
			} else if expired > 0 && infoLog != nil {
				infoLog.Printf("booking expirer: auto-cancelled %d stale pending bookings", expired)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
