package workshop

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/workshopdl/internal/utils"
)

type callbackRunner interface {
	RunCallbacks()
}

// StartPump drains the client's callback queue every interval until ctx is
// cancelled. The returned channel is closed once the pump has stopped.
func StartPump(ctx context.Context, client callbackRunner, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = utils.DefaultPollInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log.Debug().Str("op", "workshop/pump").Msgf("callback pump started, interval %s", interval)
		for {
			client.RunCallbacks()
			select {
			case <-ctx.Done():
				log.Debug().Str("op", "workshop/pump").Msg("callback pump stopped")
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}
