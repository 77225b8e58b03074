package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
)

type RoomService interface {
	List(ctx context.Context, params models.RoomListParams) (models.Page[models.Room], error)
	Get(ctx context.Context, roomID string) (*models.Room, error)
	// Create uploads the staged images in images, then creates the room.
	// If creation fails the freshly uploaded files are deleted again and
	// the creation error is returned.
	Create(ctx context.Context, draft models.RoomDraft, images []models.ImageRef) (*models.Room, error)
	// Update saves draft over original, syncs images to current and
	// replaces the amenities when their set changed.
	Update(ctx context.Context, original *models.Room, draft models.RoomDraft, current []models.ImageRef) (models.SyncResult, error)
	Delete(ctx context.Context, roomID string) error
	UpdateAmenities(ctx context.Context, roomID string, amenities []models.AmenityAssignment) error
	CurrentPassword(ctx context.Context, roomID string) (string, bool)
	SetPassword(ctx context.Context, roomID, password string) (string, error)
}

type roomService struct {
	client   client.Client
	images   ImageService
	cache    querycache.Repository
	notifier Notifier
	logger   logging.Logger
}

func NewRoomService(c client.Client, images ImageService, cache querycache.Repository, notifier Notifier, logger logging.Logger) RoomService {
	if notifier == nil {
		notifier = NopNotifier()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &roomService{client: c, images: images, cache: cache, notifier: notifier, logger: logger}
}

func (s *roomService) List(ctx context.Context, params models.RoomListParams) (models.Page[models.Room], error) {
	key := querycache.RoomsListKey(params.Query())
	return readThrough(ctx, s.cache, s.logger, key, func() (models.Page[models.Room], error) {
		return s.client.ListRooms(ctx, params)
	})
}

func (s *roomService) Get(ctx context.Context, roomID string) (*models.Room, error) {
	return readThrough(ctx, s.cache, s.logger, querycache.RoomDetailKey(roomID), func() (*models.Room, error) {
		return s.client.GetRoom(ctx, roomID)
	})
}

func (s *roomService) Create(ctx context.Context, draft models.RoomDraft, images []models.ImageRef) (*models.Room, error) {
	var (
		files  []*models.LocalFile
		hosted []models.ImageURL
	)
	for _, img := range images {
		switch {
		case img.IsLocal && img.File != nil:
			files = append(files, img.File)
		case img.URL != "":
			hosted = append(hosted, models.ImageURL{URL: img.URL})
		}
	}

	var uploaded []string
	outcomes := s.images.UploadImages(ctx, files)
	for _, o := range outcomes {
		if o.Success {
			uploaded = append(uploaded, o.URL)
		}
	}
	if n := models.CountFailed(outcomes); n > 0 {
		s.logger.Warn(ctx, "some room images failed to upload", "failed", n)
		s.notifier.Warning(fmt.Sprintf("%d image(s) failed to upload", n))
	}

	draft.Images = append(hosted, urlsToImages(uploaded)...)

	room, err := s.client.CreateRoom(ctx, draft)
	if err != nil {
		s.images.RollbackUploadedImages(ctx, uploaded)
		return nil, err
	}

	s.invalidate(ctx, querycache.RoomsListPrefix)
	return room, nil
}

func (s *roomService) Update(ctx context.Context, original *models.Room, draft models.RoomDraft, current []models.ImageRef) (models.SyncResult, error) {
	if original == nil || original.ID == "" {
		return models.SyncResult{}, fmt.Errorf("update room: %w", client.ErrNotFound)
	}
	roomID := original.ID

	if _, err := s.client.UpdateRoom(ctx, roomID, draft); err != nil {
		return models.SyncResult{}, err
	}

	result := s.images.SyncImages(ctx, roomID, current, original.Images)

	if !sameSet(draft.AmenityIDs, original.AmenityIDs()) {
		assignments := make([]models.AmenityAssignment, 0, len(draft.AmenityIDs))
		for _, id := range draft.AmenityIDs {
			assignments = append(assignments, models.AmenityAssignment{AmenityID: id})
		}
		if err := s.client.UpdateRoomAmenities(ctx, roomID, assignments); err != nil {
			s.logger.Warn(ctx, "room amenities update failed", "room_id", roomID, "error", err)
			s.notifier.Warning("Failed to update amenities: " + client.ErrorMessage(err))
		}
	}

	s.invalidate(ctx, querycache.RoomsListPrefix)
	s.invalidate(ctx, querycache.RoomDetailKey(roomID))
	return result, nil
}

func (s *roomService) Delete(ctx context.Context, roomID string) error {
	if err := s.client.DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	s.invalidate(ctx, querycache.RoomsListPrefix)
	if err := s.cache.Remove(ctx, querycache.RoomDetailKey(roomID)); err != nil {
		s.logger.Warn(ctx, "cache remove failed", "room_id", roomID, "error", err)
	}
	return nil
}

func (s *roomService) UpdateAmenities(ctx context.Context, roomID string, amenities []models.AmenityAssignment) error {
	if err := s.client.UpdateRoomAmenities(ctx, roomID, amenities); err != nil {
		return err
	}
	s.invalidate(ctx, querycache.RoomDetailKey(roomID))
	return nil
}

// CurrentPassword reports ok=false when the room has no password or it
// could not be read.
func (s *roomService) CurrentPassword(ctx context.Context, roomID string) (string, bool) {
	pw, err := s.client.GetRoomPassword(ctx, roomID)
	if err != nil {
		s.logger.Debug(ctx, "room password unavailable", "room_id", roomID, "error", err)
		return "", false
	}
	return pw, pw != ""
}

func (s *roomService) SetPassword(ctx context.Context, roomID, password string) (string, error) {
	return s.client.SetRoomPassword(ctx, roomID, password)
}

func (s *roomService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.Invalidate(ctx, prefix); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
	}
}

func urlsToImages(urls []string) []models.ImageURL {
	out := make([]models.ImageURL, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.ImageURL{URL: u})
	}
	return out
}

func sameSet(a, b []string) bool {
	sa := make(map[string]struct{}, len(a))
	for _, v := range a {
		sa[v] = struct{}{}
	}
	sb := make(map[string]struct{}, len(b))
	for _, v := range b {
		sb[v] = struct{}{}
	}
	if len(sa) != len(sb) {
		return false
	}
	for v := range sa {
		if _, ok := sb[v]; !ok {
			return false
		}
	}
	return true
}

// readThrough serves key from the cache or loads and stores it. Cache
// failures are logged and never fail the call.
func readThrough[T any](ctx context.Context, cache querycache.Repository, logger logging.Logger, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn(ctx, "cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if err := cache.Set(ctx, key, v); err != nil {
		logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
	return v, nil
}
