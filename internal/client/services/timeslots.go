package services

import (
	"context"
	"regexp"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
)

type TimeSlotService interface {
	List(ctx context.Context, roomID string) ([]models.TimeSlot, error)
	Get(ctx context.Context, timeSlotID string) (*models.TimeSlot, error)
	Create(ctx context.Context, roomID string, slot models.TimeSlot) (*models.TimeSlot, error)
	Update(ctx context.Context, roomID, timeSlotID string, slot models.TimeSlot) (*models.TimeSlot, error)
	Delete(ctx context.Context, roomID, timeSlotID string) error
	// Availability returns the active slots between the two dates
	// (YYYY-MM-DD, either may be empty).
	Availability(ctx context.Context, roomID, startDate, endDate string) ([]models.TimeSlot, error)
	Book(ctx context.Context, roomID, timeSlotID, date string) (*models.Booking, error)
}

type timeSlotService struct {
	client client.Client
	cache  querycache.Repository
	logger logging.Logger
}

func NewTimeSlotService(c client.Client, cache querycache.Repository, logger logging.Logger) TimeSlotService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &timeSlotService{client: c, cache: cache, logger: logger}
}

var (
	hhmmRe      = regexp.MustCompile(`^\d{2}:\d{2}$`)
	clockTimeRe = regexp.MustCompile(`(\d{2}):(\d{2})`)
)

// NormalizeTime reduces the time formats the backend returns to "HH:MM".
// Strings it cannot make sense of are returned unchanged.
func NormalizeTime(s string) string {
	if s == "" || hhmmRe.MatchString(s) {
		return s
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	if m := clockTimeRe.FindStringSubmatch(s); m != nil {
		return m[1] + ":" + m[2]
	}
	return s
}

func normalizeSlot(slot models.TimeSlot) models.TimeSlot {
	slot.StartTime = NormalizeTime(slot.StartTime)
	slot.EndTime = NormalizeTime(slot.EndTime)
	return slot
}

func (s *timeSlotService) List(ctx context.Context, roomID string) ([]models.TimeSlot, error) {
	slots, err := readThrough(ctx, s.cache, s.logger, querycache.RoomTimeSlotsKey(roomID), func() ([]models.TimeSlot, error) {
		return s.client.ListTimeSlots(ctx, roomID)
	})
	if err != nil {
		return nil, err
	}
	for i := range slots {
		slots[i] = normalizeSlot(slots[i])
	}
	return slots, nil
}

func (s *timeSlotService) Get(ctx context.Context, timeSlotID string) (*models.TimeSlot, error) {
	slot, err := s.client.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, err
	}
	n := normalizeSlot(*slot)
	return &n, nil
}

func (s *timeSlotService) Create(ctx context.Context, roomID string, slot models.TimeSlot) (*models.TimeSlot, error) {
	slot = normalizeSlot(slot)
	if slot.Status == "" {
		slot.Status = models.TimeSlotStatusAvailable
	}
	created, err := s.client.CreateTimeSlot(ctx, roomID, slot)
	if err != nil {
		return nil, err
	}
	s.invalidateRoom(ctx, roomID)
	return created, nil
}

func (s *timeSlotService) Update(ctx context.Context, roomID, timeSlotID string, slot models.TimeSlot) (*models.TimeSlot, error) {
	updated, err := s.client.UpdateTimeSlot(ctx, roomID, timeSlotID, normalizeSlot(slot))
	if err != nil {
		return nil, err
	}
	s.invalidateRoom(ctx, roomID)
	return updated, nil
}

func (s *timeSlotService) Delete(ctx context.Context, roomID, timeSlotID string) error {
	if err := s.client.DeleteTimeSlot(ctx, roomID, timeSlotID); err != nil {
		return err
	}
	s.invalidateRoom(ctx, roomID)
	return nil
}

func (s *timeSlotService) Availability(ctx context.Context, roomID, startDate, endDate string) ([]models.TimeSlot, error) {
	key := querycache.AvailabilityKey(roomID, startDate, endDate)
	dates, err := readThrough(ctx, s.cache, s.logger, key, func() ([]models.TimeSlotAvailabilityDate, error) {
		return s.client.TimeSlotAvailability(ctx, roomID, startDate, endDate)
	})
	if err != nil {
		return nil, err
	}
	return models.ActiveSlots(dates), nil
}

func (s *timeSlotService) Book(ctx context.Context, roomID, timeSlotID, date string) (*models.Booking, error) {
	booking, err := s.client.CreateBooking(ctx, models.BookingRequest{RoomID: roomID, TimeSlotID: timeSlotID, Date: date})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, querycache.AvailabilityPrefix)
	return booking, nil
}

func (s *timeSlotService) invalidateRoom(ctx context.Context, roomID string) {
	s.invalidate(ctx, querycache.RoomTimeSlotsKey(roomID))
	s.invalidate(ctx, querycache.Key(querycache.AvailabilityPrefix, roomID))
}

func (s *timeSlotService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.Invalidate(ctx, prefix); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
	}
}
