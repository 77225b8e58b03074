package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

func (c *HTTPClient) ListTimeSlots(ctx context.Context, roomID string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := c.do(ctx, &request{method: http.MethodGet, path: roomPath(roomID, "time-slots")}, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *HTTPClient) GetTimeSlot(ctx context.Context, timeSlotID string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := c.do(ctx, &request{method: http.MethodGet, path: "timeslots/" + url.PathEscape(timeSlotID)}, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *HTTPClient) CreateTimeSlot(ctx context.Context, roomID string, slot models.TimeSlot) (*models.TimeSlot, error) {
	slot.ID = ""
	slot.RoomID = roomID
	return c.writeTimeSlot(ctx, http.MethodPost, roomPath(roomID, "time-slots"), slot)
}

func (c *HTTPClient) UpdateTimeSlot(ctx context.Context, roomID, timeSlotID string, slot models.TimeSlot) (*models.TimeSlot, error) {
	slot.ID = ""
	slot.RoomID = roomID
	return c.writeTimeSlot(ctx, http.MethodPut, roomPath(roomID, "time-slots", url.PathEscape(timeSlotID)), slot)
}

func (c *HTTPClient) writeTimeSlot(ctx context.Context, method, path string, slot models.TimeSlot) (*models.TimeSlot, error) {
	r, err := jsonRequest(method, path, slot)
	if err != nil {
		return nil, err
	}
	var out models.TimeSlot
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTimeSlot(ctx context.Context, roomID, timeSlotID string) error {
	r := &request{method: http.MethodDelete, path: roomPath(roomID, "time-slots", url.PathEscape(timeSlotID))}
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) TimeSlotAvailability(ctx context.Context, roomID, startDate, endDate string) ([]models.TimeSlotAvailabilityDate, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	r := &request{method: http.MethodGet, path: roomPath(roomID, "time-slots", "availability"), query: q}

	var dates []models.TimeSlotAvailabilityDate
	if err := c.do(ctx, r, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	r, err := jsonRequest(http.MethodPost, "bookings", req)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := c.do(ctx, r, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
