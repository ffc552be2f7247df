package availability

import (
	"context"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/responses"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultPollInterval = 30 * time.Second

// ScanFunc produces one free-friends result plus the uids it covered.
type ScanFunc func(ctx context.Context, viewerUID string) (*responses.FreeFriends, map[string]struct{}, error)

type WatcherOptions struct {
	ViewerUID    string
	Scan         ScanFunc
	Events       <-chan models.ScheduleEvent
	StopEvents   func()
	PollInterval time.Duration
	// Limiter spaces event-driven rescans. Events arriving while a rescan is
	// already pending are folded into it.
	Limiter *rate.Limiter
	Log     *zap.Logger
}

// Watcher re-scans one viewer's friends on a poll interval, on schedule
// changes inside the roster and on slot boundaries. After Stop no further
// result is delivered, including a scan that was already running.
type Watcher struct {
	viewerUID  string
	scan       ScanFunc
	events     <-chan models.ScheduleEvent
	stopEvents func()
	poll       time.Duration
	limiter    *rate.Limiter
	log        *zap.Logger

	updates  chan *responses.FreeFriends
	done     chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewWatcher(opts WatcherOptions) *Watcher {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	stopEvents := opts.StopEvents
	if stopEvents == nil {
		stopEvents = func() {}
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		viewerUID:  opts.ViewerUID,
		scan:       opts.Scan,
		events:     opts.Events,
		stopEvents: stopEvents,
		poll:       poll,
		limiter:    limiter,
		log:        log,
		updates:    make(chan *responses.FreeFriends),
		done:       make(chan struct{}),
	}
}

// Start delivers first and then keeps watching until ctx is done or Stop is
// called. It must be called once.
func (w *Watcher) Start(ctx context.Context, first *responses.FreeFriends, watched map[string]struct{}) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx, first, watched)
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
	})
}

// Updates is closed once the watcher has stopped.
func (w *Watcher) Updates() <-chan *responses.FreeFriends {
	return w.updates
}

func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run(ctx context.Context, first *responses.FreeFriends, watched map[string]struct{}) {
	defer close(w.done)
	defer close(w.updates)
	defer w.stopEvents()

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	if !w.deliver(ctx, first) {
		return
	}

	events := w.events
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending = nil
			if !w.rescan(ctx, &watched) {
				return
			}
		case <-pending:
			pending = nil
			if !w.rescan(ctx, &watched) {
				return
			}
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if pending != nil || !w.concerns(event, watched) {
				continue
			}
			pending = time.After(w.limiter.Reserve().Delay())
		}
	}
}

func (w *Watcher) concerns(event models.ScheduleEvent, watched map[string]struct{}) bool {
	switch event.Type {
	case constvars.EventTypeSlotTick:
		return true
	case constvars.EventTypeScheduleChanged:
		if event.UID == w.viewerUID {
			return true
		}
		_, ok := watched[event.UID]
		return ok
	}
	return false
}

// rescan reports false once the watcher must stop.
func (w *Watcher) rescan(ctx context.Context, watched *map[string]struct{}) bool {
	result, covered, err := w.scan(ctx, w.viewerUID)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		w.log.Warn("Watcher.rescan failed, keeping previous result",
			zap.String(constvars.LoggingViewerUIDKey, w.viewerUID),
			zap.Error(err),
		)
		return true
	}
	*watched = covered
	return w.deliver(ctx, result)
}

func (w *Watcher) deliver(ctx context.Context, result *responses.FreeFriends) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case w.updates <- result:
		return true
	case <-ctx.Done():
		return false
	}
}
