package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/timeutil"
	"github.com/spec-kit/gym-service/pkg/util"
)

// WeeklyCheckinLimit caps attendance inside any rolling seven-day window.
const WeeklyCheckinLimit = 5

// CheckinService enforces the attendance quota. Both quota checks and the
// insert run inside a per-student transaction lock, so concurrent check-ins
// for one student serialize and at most one can succeed per day.
type CheckinService struct {
	checkins repository.CheckinRepository
	students repository.StudentRepository
	tx       repository.TxRunner
	clock    timeutil.Clock
	loc      *time.Location
}

// NewCheckinService constructs the service. loc decides calendar-day
// boundaries for the same-day rule.
func NewCheckinService(checkins repository.CheckinRepository, students repository.StudentRepository, tx repository.TxRunner, clock timeutil.Clock, loc *time.Location) *CheckinService {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CheckinService{checkins: checkins, students: students, tx: tx, clock: clock, loc: loc}
}

// Record registers an attendance for the student.
//
// The rolling-week quota is evaluated before the same-day rule: a student
// at the weekly limit gets the quota error even when today already has a
// check-in.
func (s *CheckinService) Record(ctx context.Context, studentID string) (*domain.Checkin, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}

	now := s.clock.Now()
	checkin := &domain.Checkin{StudentID: studentID, CreatedAt: now}

	err := s.tx.WithStudentLock(ctx, studentID, func(ctx context.Context) error {
		weekCount, err := s.checkins.CountInRange(ctx, studentID, timeutil.DaysAgo(now, 7), now)
		if err != nil {
			return err
		}
		if weekCount >= WeeklyCheckinLimit {
			return util.NewQuotaExceeded(studentID, WeeklyCheckinLimit)
		}

		dayCount, err := s.checkins.CountInRange(ctx, studentID,
			timeutil.StartOfDay(now, s.loc), timeutil.EndOfDay(now, s.loc))
		if err != nil {
			return err
		}
		if dayCount > 0 {
			return util.NewDuplicateCheckin(studentID)
		}

		return s.checkins.Create(ctx, checkin)
	})
	if err != nil {
		return nil, util.MapError(err)
	}
	return checkin, nil
}

// CanCheckin reports whether Record would currently succeed, without
// writing anything. The answer is advisory; only Record is authoritative.
func (s *CheckinService) CanCheckin(ctx context.Context, studentID string) (bool, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if err == pgx.ErrNoRows {
			return false, util.NewNotFound("student", nil)
		}
		return false, util.MapError(err)
	}

	now := s.clock.Now()
	weekCount, err := s.checkins.CountInRange(ctx, studentID, timeutil.DaysAgo(now, 7), now)
	if err != nil {
		return false, util.MapError(err)
	}
	if weekCount >= WeeklyCheckinLimit {
		return false, nil
	}

	dayCount, err := s.checkins.CountInRange(ctx, studentID,
		timeutil.StartOfDay(now, s.loc), timeutil.EndOfDay(now, s.loc))
	if err != nil {
		return false, util.MapError(err)
	}
	return dayCount == 0, nil
}

// List returns the student's attendance history, newest first.
func (s *CheckinService) List(ctx context.Context, studentID string, limit, offset int) ([]domain.Checkin, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}
	checkins, err := s.checkins.ListByStudent(ctx, studentID, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return checkins, nil
}
