package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/common"
)

// fakeClient implements client.Client; unset hooks panic through the nil
// embedded interface, so every test wires only what it exercises.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	upload          func(file *models.LocalFile) (string, error)
	deleteByURL     func(url string) error
	addRoomImages   func(roomID string, urls []string) error
	deleteRoomImage func(roomID, imageID string) error

	listRooms      func(params models.RoomListParams) (models.Page[models.Room], error)
	getRoom        func(roomID string) (*models.Room, error)
	createRoom     func(draft models.RoomDraft) (*models.Room, error)
	updateRoom     func(roomID string, draft models.RoomDraft) (*models.Room, error)
	deleteRoom     func(roomID string) error
	updateAmen     func(roomID string, a []models.AmenityAssignment) error
	getPassword    func(roomID string) (string, error)
	setPassword    func(roomID, pw string) (string, error)
	listSlots      func(roomID string) ([]models.TimeSlot, error)
	createSlot     func(roomID string, slot models.TimeSlot) (*models.TimeSlot, error)
	deleteSlot     func(roomID, id string) error
	availability   func(roomID, start, end string) ([]models.TimeSlotAvailabilityDate, error)
	createBooking  func(req models.BookingRequest) (*models.Booking, error)
	listAmenities  func() ([]models.Amenity, error)
	createAmenity  func(a models.Amenity) (*models.Amenity, error)
	login          func(creds models.Credentials) (*models.AuthResponse, error)
	hasTokens      bool
	clearedTokens  bool
	createSchedule func(st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error)
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeClient) Upload(ctx context.Context, folder common.UploadFolder, file *models.LocalFile) (string, error) {
	f.record("upload " + file.Name)
	return f.upload(file)
}

func (f *fakeClient) DeleteByURL(ctx context.Context, url string) error {
	f.record("purge " + url)
	if f.deleteByURL == nil {
		return nil
	}
	return f.deleteByURL(url)
}

func (f *fakeClient) AddRoomImages(ctx context.Context, roomID string, urls []string) error {
	f.record("link " + roomID)
	return f.addRoomImages(roomID, urls)
}

func (f *fakeClient) DeleteRoomImage(ctx context.Context, roomID, imageID string) error {
	f.record("detach " + imageID)
	return f.deleteRoomImage(roomID, imageID)
}

func (f *fakeClient) ListRooms(ctx context.Context, params models.RoomListParams) (models.Page[models.Room], error) {
	f.record("listRooms")
	return f.listRooms(params)
}

func (f *fakeClient) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	f.record("getRoom " + roomID)
	return f.getRoom(roomID)
}

func (f *fakeClient) CreateRoom(ctx context.Context, draft models.RoomDraft) (*models.Room, error) {
	f.record("createRoom")
	return f.createRoom(draft)
}

func (f *fakeClient) UpdateRoom(ctx context.Context, roomID string, draft models.RoomDraft) (*models.Room, error) {
	f.record("updateRoom " + roomID)
	return f.updateRoom(roomID, draft)
}

func (f *fakeClient) DeleteRoom(ctx context.Context, roomID string) error {
	f.record("deleteRoom " + roomID)
	return f.deleteRoom(roomID)
}

func (f *fakeClient) UpdateRoomAmenities(ctx context.Context, roomID string, a []models.AmenityAssignment) error {
	f.record("amenities " + roomID)
	return f.updateAmen(roomID, a)
}

func (f *fakeClient) GetRoomPassword(ctx context.Context, roomID string) (string, error) {
	return f.getPassword(roomID)
}

func (f *fakeClient) SetRoomPassword(ctx context.Context, roomID, pw string) (string, error) {
	return f.setPassword(roomID, pw)
}

func (f *fakeClient) ListTimeSlots(ctx context.Context, roomID string) ([]models.TimeSlot, error) {
	f.record("listSlots " + roomID)
	return f.listSlots(roomID)
}

func (f *fakeClient) CreateTimeSlot(ctx context.Context, roomID string, slot models.TimeSlot) (*models.TimeSlot, error) {
	return f.createSlot(roomID, slot)
}

func (f *fakeClient) DeleteTimeSlot(ctx context.Context, roomID, id string) error {
	return f.deleteSlot(roomID, id)
}

func (f *fakeClient) TimeSlotAvailability(ctx context.Context, roomID, start, end string) ([]models.TimeSlotAvailabilityDate, error) {
	f.record("availability " + roomID)
	return f.availability(roomID, start, end)
}

func (f *fakeClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	return f.createBooking(req)
}

func (f *fakeClient) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	f.record("listAmenities")
	return f.listAmenities()
}

func (f *fakeClient) CreateAmenity(ctx context.Context, a models.Amenity) (*models.Amenity, error) {
	return f.createAmenity(a)
}

func (f *fakeClient) CreateScheduleType(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
	return f.createSchedule(st, image)
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	resp, err := f.login(creds)
	if err == nil {
		f.hasTokens = true
	}
	return resp, err
}

func (f *fakeClient) ClearTokens() {
	f.hasTokens = false
	f.clearedTokens = true
}

func (f *fakeClient) HasTokens() bool { return f.hasTokens }

// memCache is an in-memory querycache.Repository that records mutations.
type memCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	stale       map[string]bool
	invalidated []string
	removed     []string
	getErr      error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, stale: map[string]bool{}}
}

func under(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.entries[key]
	if !ok || c.stale[key] {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	delete(c.stale, key)
	return nil
}

func (c *memCache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, prefix)
	for k := range c.entries {
		if under(k, prefix) {
			c.stale[k] = true
		}
	}
	return nil
}

func (c *memCache) Remove(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, prefix)
	for k := range c.entries {
		if under(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Warning(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func localImage(name string) models.ImageRef {
	return models.NewLocalImage(&models.LocalFile{Name: name, ContentType: "image/jpeg", Data: []byte(name)})
}
