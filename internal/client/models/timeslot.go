package models

import "time"

const TimeSlotStatusAvailable = "AVAILABLE"

type TimeSlot struct {
	ID          string     `json:"id,omitempty"`
	RoomID      string     `json:"roomId,omitempty"`
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	Price       float64    `json:"price,omitempty"`
	IsOvernight bool       `json:"isOvernight"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type TimeSlotAvailabilityItem struct {
	TimeSlot TimeSlot `json:"timeSlot"`
	IsActive bool     `json:"isActive"`
}

type TimeSlotAvailabilityDate struct {
	Date      string                     `json:"date"`
	TimeSlots []TimeSlotAvailabilityItem `json:"timeSlots"`
}

// ActiveSlots flattens availability dates into the slots marked active.
func ActiveSlots(dates []TimeSlotAvailabilityDate) []TimeSlot {
	var out []TimeSlot
	for _, d := range dates {
		for _, item := range d.TimeSlots {
			if item.IsActive {
				out = append(out, item.TimeSlot)
			}
		}
	}
	return out
}

type BookingRequest struct {
	RoomID     string `json:"roomId"`
	TimeSlotID string `json:"timeSlotId"`
	Date       string `json:"date"`
}

type Booking struct {
	ID         string     `json:"id"`
	RoomID     string     `json:"roomId"`
	TimeSlotID string     `json:"timeSlotId"`
	Date       string     `json:"date"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}
