package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"carslot/internal/availability"
	"carslot/internal/reservations/events"
	reserrors "carslot/internal/reservations/errors"
	"carslot/internal/reservations/repository"
	"carslot/internal/reservations/validator"
	"carslot/pkg/config"
	apperrors "carslot/pkg/errors"
	"carslot/pkg/logger"
	"carslot/pkg/model"
	"carslot/pkg/sanitizer"
	"carslot/pkg/timeofday"
)

// CreateReservationInput carries the caller-supplied fields for a new
// reservation. Start and duration are combined into the stored interval;
// the end time is derived, never supplied.
type CreateReservationInput struct {
	Name        string
	Date        string
	StartTime   string
	DurationMin int
	Resource    string
}

type ReservationService interface {
	SelectableStarts(ctx context.Context, date, resource string, minStart *timeofday.TimeOfDay) ([]timeofday.TimeOfDay, error)
	ValidDurations(ctx context.Context, date, resource string, start timeofday.TimeOfDay) ([]int, error)
	Create(ctx context.Context, input CreateReservationInput) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	CancelByID(ctx context.Context, id int64) (*model.Reservation, error)
	CancelExpired(ctx context.Context) (int64, error)
}

type reservationService struct {
	repository     repository.ReservationRepository
	lockRepository repository.ReservationLockRepository
	validator      *validator.ReservationValidator
	publisher      events.Publisher
	cfg            *config.Config
	log            *logger.Logger
	now            func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	v *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
	log *logger.Logger,
) ReservationService {
	return &reservationService{
		repository:     repo,
		lockRepository: lockRepo,
		validator:      v,
		publisher:      publisher,
		cfg:            cfg,
		log:            log,
		now:            time.Now,
	}
}

// sweepExpired cancels every reservation dated strictly before today. It runs
// at the start of each availability query and each create so stale rows never
// influence slot computation.
func (s *reservationService) sweepExpired(ctx context.Context) error {
	_, err := s.CancelExpired(ctx)
	return err
}

func (s *reservationService) checkQuery(date, resource string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	if !s.cfg.HasResource(resource) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown resource %q", resource))
	}
	return nil
}

func (s *reservationService) SelectableStarts(ctx context.Context, date, resource string, minStart *timeofday.TimeOfDay) ([]timeofday.TimeOfDay, error) {
	if err := s.checkQuery(date, resource); err != nil {
		return nil, err
	}
	if err := s.sweepExpired(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.repository.FindReserved(ctx, date, resource)
	if err != nil {
		return nil, apperrors.Internal("failed to load reservations", err)
	}

	blocked := availability.BlockedSlots(reservations, resource, date)
	starts := availability.SelectableStarts(availability.AllSlots(), blocked, minStart)
	if len(starts) == 0 {
		return nil, apperrors.NoAvailableStart(date, resource)
	}
	return starts, nil
}

func (s *reservationService) ValidDurations(ctx context.Context, date, resource string, start timeofday.TimeOfDay) ([]int, error) {
	if err := s.checkQuery(date, resource); err != nil {
		return nil, err
	}
	if !start.Aligned() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("start time %s is not on a 15 minute boundary", start))
	}
	if err := s.sweepExpired(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.repository.FindReserved(ctx, date, resource)
	if err != nil {
		return nil, apperrors.Internal("failed to load reservations", err)
	}

	durations := availability.ValidDurations(start, reservations, resource, date)
	if len(durations) == 0 {
		return nil, apperrors.NoValidDuration(date, resource, start.String())
	}
	return durations, nil
}

func (s *reservationService) Create(ctx context.Context, input CreateReservationInput) (*model.Reservation, error) {
	name := sanitizer.NormalizeName(input.Name)
	if name == "" {
		return nil, apperrors.Validation("name must not be empty", map[string]any{
			"field": "name",
		})
	}

	if !s.cfg.HasResource(input.Resource) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource %q", input.Resource))
	}

	if err := s.validator.ValidateDuration(input.DurationMin); err != nil {
		return nil, apperrors.Validation(err.Error(), map[string]any{
			"field": "duration_min",
		})
	}

	start, err := timeofday.Parse(input.StartTime)
	if err != nil || !start.Aligned() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid start time %q", input.StartTime))
	}

	reservation := &model.Reservation{
		Name:      name,
		Date:      input.Date,
		StartTime: start.String(),
		EndTime:   start.Add(input.DurationMin).String(),
		Resource:  input.Resource,
		Status:    model.StatusReserved,
	}
	if err := s.validator.Validate(reservation); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.sweepExpired(ctx); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, input.Resource, input.Date)
	if err != nil {
		return nil, err
	}
	defer s.releaseSlotLock(ctx, lockID)

	err = s.repository.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.verifySlotFree(txCtx, start, input.DurationMin, input.Resource, input.Date); err != nil {
			return err
		}
		return s.repository.Create(txCtx, reservation)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		if errors.Is(err, reserrors.ErrTimeConflict) {
			return nil, apperrors.Conflict("requested time range is no longer available")
		}
		return nil, apperrors.Internal("failed to create reservation", err)
	}

	s.log.Info("Reservation created",
		"id", reservation.ID,
		"resource", reservation.Resource,
		"date", reservation.Date,
		"start_time", reservation.StartTime,
		"end_time", reservation.EndTime,
	)
	s.publisher.ReservationCreated(ctx, reservation)

	return reservation, nil
}

// verifySlotFree re-derives the valid duration set inside the transaction and
// rejects the insert when the requested duration fell out of it. The lock
// serializes writers per resource and day; this check closes the window
// between the caller's availability query and the insert.
func (s *reservationService) verifySlotFree(ctx context.Context, start timeofday.TimeOfDay, durationMin int, resource, date string) error {
	reservations, err := s.repository.FindReserved(ctx, date, resource)
	if err != nil {
		return err
	}

	durations := availability.ValidDurations(start, reservations, resource, date)
	if !slices.Contains(durations, durationMin) {
		return reserrors.ErrTimeConflict
	}
	return nil
}

func (s *reservationService) acquireSlotLock(ctx context.Context, resource, date string) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s_%s", resource, date)
	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.LockTTL),
	}

	if _, err := s.lockRepository.Create(ctx, lock); err != nil {
		s.log.Warn("Slot lock contention", "lock_id", lockID, "error", err)
		return "", apperrors.Conflict("another reservation for this resource and date is in progress")
	}
	return lockID, nil
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) {
	if err := s.lockRepository.Delete(ctx, lockID); err != nil {
		// the TTL index reaps the document if the delete fails
		s.log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
	}
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var (
		wg           sync.WaitGroup
		reservations []*model.Reservation
		total        int64
		findErr      error
		countErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reservations, findErr = s.repository.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repository.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("failed to list reservations", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("failed to count reservations", countErr)
	}
	return reservations, total, nil
}

func (s *reservationService) CancelByID(ctx context.Context, id int64) (*model.Reservation, error) {
	reservation, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("reservation", id)
		}
		return nil, apperrors.Internal("failed to load reservation", err)
	}
	if reservation.Status == model.StatusCancelled {
		return reservation, nil
	}

	if err := s.repository.CancelByID(ctx, id); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("reservation", id)
		}
		return nil, apperrors.Internal("failed to cancel reservation", err)
	}
	reservation.Status = model.StatusCancelled

	s.log.Info("Reservation cancelled", "id", id)
	s.publisher.ReservationCancelled(ctx, reservation)

	return reservation, nil
}

func (s *reservationService) CancelExpired(ctx context.Context) (int64, error) {
	today := s.now().Format(model.DateLayout)

	count, err := s.repository.CancelExpired(ctx, today)
	if err != nil {
		return 0, apperrors.Internal("failed to expire past reservations", err)
	}
	if count > 0 {
		s.log.Info("Expired past reservations", "today", today, "count", count)
		s.publisher.ReservationsExpired(ctx, today, count)
	}
	return count, nil
}
