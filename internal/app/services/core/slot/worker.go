package slot

import (
	"context"
	"fmt"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/timetable"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultLockTTL = 30 * time.Second

// Worker publishes a slot.tick event at every slot boundary on class days.
// Only the instance holding the leader lock publishes.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	bus      contracts.ScheduleEventBus
	location *time.Location
	now      func() time.Time

	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	token string
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, bus contracts.ScheduleEventBus, location *time.Location) *Worker {
	if location == nil {
		location = time.Local
	}
	return &Worker{
		log:      log,
		cfg:      cfg,
		locker:   lockerSvc,
		bus:      bus,
		location: location,
		now:      time.Now,
	}
}

// BoundarySpecs returns one cron spec per distinct slot start or end minute,
// Monday to Friday, in time order.
func BoundarySpecs() []string {
	seen := make(map[int]bool)
	var minutes []int
	for _, slot := range timetable.Slots() {
		for _, clock := range []timetable.Clock{slot.Start, slot.End} {
			if !seen[clock.Minutes()] {
				seen[clock.Minutes()] = true
				minutes = append(minutes, clock.Minutes())
			}
		}
	}
	sort.Ints(minutes)

	specs := make([]string, 0, len(minutes))
	for _, minute := range minutes {
		specs = append(specs, fmt.Sprintf("%d %d * * 1-5", minute%60, minute/60))
	}
	return specs
}

// Start schedules the boundary jobs in the campus time zone.
func (w *Worker) Start(ctx context.Context) error {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(w.location))
	for _, spec := range BoundarySpecs() {
		if _, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) }); err != nil {
			w.cancel()
			return err
		}
		w.log.Debug("slot.worker: scheduled boundary", zap.String(constvars.LoggingCronSpecKey, spec))
	}
	c.Start()
	w.cron = c
	w.log.Info("slot.worker: started", zap.String("location", w.location.String()))
	return nil
}

// Stop waits for a running tick and gives up leadership.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}

	w.mu.Lock()
	token := w.token
	w.token = ""
	w.mu.Unlock()
	if token == "" {
		return
	}
	if err := w.locker.Unlock(context.Background(), constvars.RedisKeySlotTickerLeader, token); err != nil {
		w.log.Warn("slot.worker: failed to release leader lock", zap.Error(err))
	}
}

func (w *Worker) lockTTL() time.Duration {
	if w.cfg.SlotTicker.LockTTL > 0 {
		return w.cfg.SlotTicker.LockTTL
	}
	return defaultLockTTL
}

// lead refreshes a lock this instance already holds, or tries to take it.
func (w *Worker) lead(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ttl := w.lockTTL()
	if w.token != "" {
		if err := w.locker.Refresh(ctx, constvars.RedisKeySlotTickerLeader, w.token, ttl); err == nil {
			return true
		}
		w.token = ""
	}

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeySlotTickerLeader, ttl)
	if err != nil {
		w.log.Warn("slot.worker: leader lock attempt failed", zap.Error(err))
		return false
	}
	if !acquired {
		w.log.Info("slot.worker: leader lock not acquired; another instance publishes this tick")
		return false
	}
	w.token = token
	return true
}

func (w *Worker) runOnce(ctx context.Context) {
	if !w.lead(ctx) {
		return
	}

	resolved := timetable.ResolveIn(w.now(), w.location)
	if err := w.bus.PublishSlotTick(ctx, resolved); err != nil {
		w.log.Warn("slot.worker: failed to publish slot tick", zap.Error(err))
		return
	}
	w.log.Info("slot.worker: slot tick published",
		zap.String(constvars.LoggingWeekdayKey, resolved.Weekday),
		zap.Int(constvars.LoggingSlotKey, resolved.Ordinal),
		zap.String(constvars.LoggingPhaseKey, string(resolved.Phase())),
	)
}
