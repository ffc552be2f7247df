package availability

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultScanConcurrency = 16

// ScheduleFetchFunc loads one member's schedule. A nil schedule with a nil
// error means the member never saved one.
type ScheduleFetchFunc func(ctx context.Context, uid string) (timetable.WeeklySchedule, error)

// Scanner evaluates every member of a roster against the slot running at a
// given instant. It only reads.
type Scanner struct {
	fetch    ScheduleFetchFunc
	limit    int
	location *time.Location
	log      *zap.Logger
}

func NewScanner(timetables contracts.TimetableRepository, concurrency int, location *time.Location, logger *zap.Logger) *Scanner {
	fetch := func(ctx context.Context, uid string) (timetable.WeeklySchedule, error) {
		document, err := timetables.FindByUID(ctx, uid)
		if err != nil {
			return nil, err
		}
		return models.ScheduleOf(document), nil
	}
	return NewScannerWithFetch(fetch, concurrency, location, logger)
}

func NewScannerWithFetch(fetch ScheduleFetchFunc, concurrency int, location *time.Location, logger *zap.Logger) *Scanner {
	if concurrency <= 0 {
		concurrency = defaultScanConcurrency
	}
	return &Scanner{
		fetch:    fetch,
		limit:    concurrency,
		location: location,
		log:      logger,
	}
}

// ScanFree returns the FREE members in roster order. Nothing is fetched when
// no slot is running.
func (s *Scanner) ScanFree(ctx context.Context, now time.Time, roster []models.Person) []models.Person {
	free := []models.Person{}
	resolved := timetable.ResolveIn(now, s.location)
	if !resolved.InSlot() {
		return free
	}

	statuses := s.evaluate(ctx, resolved, roster)
	for i, person := range roster {
		if statuses[i] == timetable.StatusFree {
			free = append(free, person)
		}
	}
	return free
}

// ScanRoster returns every member in roster order with a status. Outside a
// slot every member is UNKNOWN.
func (s *Scanner) ScanRoster(ctx context.Context, now time.Time, roster []models.Person) []models.MemberAvailability {
	members := make([]models.MemberAvailability, len(roster))
	for i, person := range roster {
		members[i] = models.MemberAvailability{Person: person, Status: timetable.StatusUnknown}
	}

	resolved := timetable.ResolveIn(now, s.location)
	if !resolved.InSlot() {
		return members
	}

	statuses := s.evaluate(ctx, resolved, roster)
	for i := range members {
		members[i].Status = statuses[i]
	}
	return members
}

// evaluate fetches all schedules concurrently and joins before returning.
// Results are written by index so roster order survives completion order.
func (s *Scanner) evaluate(ctx context.Context, resolved timetable.ResolvedSlot, roster []models.Person) []timetable.Status {
	requestID := utils.RequestIDFromContext(ctx)
	statuses := make([]timetable.Status, len(roster))

	var group errgroup.Group
	group.SetLimit(s.limit)
	for i, person := range roster {
		i, person := i, person
		group.Go(func() error {
			schedule, err := s.fetch(ctx, person.UID)
			if err != nil {
				s.log.Warn("Scanner.evaluate schedule fetch failed, member treated as UNKNOWN",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingUIDKey, person.UID),
					zap.Error(err),
				)
				statuses[i] = timetable.StatusUnknown
				return nil
			}
			statuses[i] = timetable.Evaluate(schedule, resolved)
			return nil
		})
	}
	_ = group.Wait()

	return statuses
}
