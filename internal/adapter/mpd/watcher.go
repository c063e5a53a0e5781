package mpd

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// Watcher owns the long-lived idle loop: connect, wait for a subsystem
// change, publish it on the event bus, wait again. Connect failures and
// mid-idle drops tear the session down and restart the whole cycle after a
// fixed backoff, indefinitely, until Shutdown. A stopped watcher can be
// started again.
type Watcher struct {
	// Dependencies (injected)
	logger *slog.Logger
	waiter ports.EventWaiter
	bus    ports.EventBus

	// Configuration
	addr    string
	backoff time.Duration
	mask    []domain.Subsystem

	// Concurrency control
	mu      sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
	running bool
}

// NewWatcher creates a watcher over an idle-mode connection. mask limits the
// subsystems waited on; empty means all. backoff <= 0 selects 5 seconds.
func NewWatcher(
	logger *slog.Logger,
	waiter ports.EventWaiter,
	bus ports.EventBus,
	addr string,
	backoff time.Duration,
	mask ...domain.Subsystem,
) *Watcher {
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	return &Watcher{
		logger:  logger,
		waiter:  waiter,
		bus:     bus,
		addr:    addr,
		backoff: backoff,
		mask:    mask,
	}
}

// Start launches the idle loop goroutine. Calling Start on a running watcher
// is a no-op. Each Start gets a fresh stop channel, so a watcher can be
// restarted after Shutdown.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.stop = make(chan struct{})
	stop := w.stop
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		w.loop(stop)
	}()
}

// Shutdown stops the loop and waits for it to exit. The idle socket is closed
// unconditionally, which is what unblocks a pending idle read; the connection
// never stays half-open across cancellation. Calling Shutdown on a stopped
// watcher is a no-op.
func (w *Watcher) Shutdown() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stop)
	w.mu.Unlock()

	w.waiter.Disconnect()
	w.wg.Wait()
}

// loop runs the connect → idle → publish cycle until stopped. stop is
// captured per Start so a restart never races the loop of a previous run.
func (w *Watcher) loop(stop <-chan struct{}) {
	ctx := context.Background()

	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := w.waiter.Connect(ctx); err != nil {
			w.logger.Warn("idle connect failed",
				slog.String("addr", w.addr),
				slog.Any("error", err))
			w.bus.Publish(domain.NewWatcherDisconnectedEvent(err))
			if !w.sleep(stop) {
				return
			}
			continue
		}

		// Shutdown may have run while Connect was dialing; its Disconnect
		// found nothing to close back then, so the freshly-opened socket
		// must be closed here or it leaks with nobody left to sever it.
		select {
		case <-stop:
			w.waiter.Disconnect()
			return
		default:
		}

		w.logger.Debug("idle connection established", slog.String("addr", w.addr))
		w.bus.Publish(domain.NewWatcherConnectedEvent(w.addr))

		for {
			subsystem, err := w.waiter.IdleForEvents(ctx, w.mask...)
			if err != nil {
				w.waiter.Disconnect()
				select {
				case <-stop:
					return
				default:
				}
				w.logger.Warn("idle wait failed, restarting cycle",
					slog.String("addr", w.addr),
					slog.Any("error", err))
				w.bus.Publish(domain.NewWatcherDisconnectedEvent(err))
				break
			}

			w.logger.Debug("subsystem changed", slog.String("subsystem", string(subsystem)))
			w.bus.Publish(domain.NewSubsystemChangedEvent(subsystem))

			select {
			case <-stop:
				w.waiter.Disconnect()
				return
			default:
			}
		}

		if !w.sleep(stop) {
			return
		}
	}
}

// sleep waits one backoff interval, returning false when the watcher is
// stopped meanwhile. The backoff is mandatory: a persistent failure must not
// busy-loop.
func (w *Watcher) sleep(stop <-chan struct{}) bool {
	timer := time.NewTimer(w.backoff)
	defer timer.Stop()

	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
