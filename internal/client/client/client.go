package client

import (
	"context"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/common"
)

// Uploader stores files and removes them again. It is implemented by the
// REST client and by the S3 gateway in package storage.
type Uploader interface {
	Upload(ctx context.Context, folder common.UploadFolder, file *models.LocalFile) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

// Client is the contract of the back-office REST API.
type Client interface {
	Uploader

	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SetTokens(tokens models.Tokens)
	ClearTokens()
	HasTokens() bool

	ListRooms(ctx context.Context, params models.RoomListParams) (models.Page[models.Room], error)
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	CreateRoom(ctx context.Context, draft models.RoomDraft) (*models.Room, error)
	UpdateRoom(ctx context.Context, roomID string, draft models.RoomDraft) (*models.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
	AddRoomImages(ctx context.Context, roomID string, urls []string) error
	DeleteRoomImage(ctx context.Context, roomID, imageID string) error
	UpdateRoomAmenities(ctx context.Context, roomID string, amenities []models.AmenityAssignment) error
	GetRoomPassword(ctx context.Context, roomID string) (string, error)
	SetRoomPassword(ctx context.Context, roomID, password string) (string, error)

	ListTimeSlots(ctx context.Context, roomID string) ([]models.TimeSlot, error)
	GetTimeSlot(ctx context.Context, timeSlotID string) (*models.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, roomID string, slot models.TimeSlot) (*models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, roomID, timeSlotID string, slot models.TimeSlot) (*models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, roomID, timeSlotID string) error
	TimeSlotAvailability(ctx context.Context, roomID, startDate, endDate string) ([]models.TimeSlotAvailabilityDate, error)

	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)

	ListAmenities(ctx context.Context) ([]models.Amenity, error)
	GetAmenity(ctx context.Context, id string) (*models.Amenity, error)
	CreateAmenity(ctx context.Context, a models.Amenity) (*models.Amenity, error)
	UpdateAmenity(ctx context.Context, a models.Amenity) (*models.Amenity, error)
	DeleteAmenity(ctx context.Context, id string) error

	ListScheduleTypes(ctx context.Context, p models.Pagination, search string) (models.Page[models.ScheduleType], error)
	CreateScheduleType(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error)
	UpdateScheduleType(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error)
	DeleteScheduleType(ctx context.Context, id string) error
}
