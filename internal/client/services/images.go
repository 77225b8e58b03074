package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ImageService keeps the images of a room in line with what the user
// edited.
//
// SyncImages never fails as a whole: every upload, link and delete gets
// its own outcome and the caller always receives a complete result.
type ImageService interface {
	SyncImages(ctx context.Context, roomID string, current []models.ImageRef, original []models.RoomImage) models.SyncResult
	UploadImages(ctx context.Context, files []*models.LocalFile) []models.OperationOutcome
	RollbackUploadedImages(ctx context.Context, urls []string)

	IsSyncing() bool
	Status() string
	// OnStatus registers fn to be called on every status change. fn must
	// not block.
	OnStatus(fn func(status string))
}

const (
	StatusIdle        = ""
	StatusUploading   = "uploading images"
	StatusLinking     = "attaching images"
	StatusDeleting    = "deleting images"
	StatusSyncing     = "syncing images"
	StatusRollingBack = "rolling back uploads"
)

type ImageServiceOptions struct {
	Folder      common.UploadFolder
	Concurrency int
	Notifier    Notifier
	Logger      logging.Logger
}

type imageService struct {
	api      client.Client
	uploader client.Uploader
	cache    querycache.Repository
	notifier Notifier
	logger   logging.Logger
	folder   common.UploadFolder
	limit    int

	mu       sync.Mutex
	active   int
	status   string
	observer func(string)
}

// NewImageService wires the image workflow. Files go through uploader,
// which is either the API itself or a direct bucket gateway; attach and
// detach always go through api.
func NewImageService(api client.Client, uploader client.Uploader, cache querycache.Repository, opts ImageServiceOptions) ImageService {
	if uploader == nil {
		uploader = api
	}
	s := &imageService{
		api:      api,
		uploader: uploader,
		cache:    cache,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		folder:   opts.Folder,
		limit:    opts.Concurrency,
	}
	if s.notifier == nil {
		s.notifier = NopNotifier()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.folder == "" {
		s.folder = common.UploadFolderRooms
	}
	return s
}

// DiffImages splits current into staged images to upload and returns the
// original images no longer present by ID. Each ID is removed at most once;
// originals without an ID cannot be addressed and are never removed.
func DiffImages(current []models.ImageRef, original []models.RoomImage) (newImages []models.ImageRef, removed []models.RoomImage) {
	kept := make(map[string]struct{}, len(current))
	for _, img := range current {
		switch {
		case img.IsLocal && img.File != nil:
			newImages = append(newImages, img)
		case !img.IsLocal && img.ID != "":
			kept[img.ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(original))
	for _, img := range original {
		if img.ID == "" {
			continue
		}
		if _, ok := seen[img.ID]; ok {
			continue
		}
		seen[img.ID] = struct{}{}
		if _, ok := kept[img.ID]; !ok {
			removed = append(removed, img)
		}
	}
	return newImages, removed
}

func (s *imageService) SyncImages(ctx context.Context, roomID string, current []models.ImageRef, original []models.RoomImage) models.SyncResult {
	s.begin()
	defer s.end()

	for _, img := range original {
		if img.ID == "" {
			s.logger.Warn(ctx, "original image without id skipped", "room_id", roomID, "url", img.URL)
		}
	}
	newImages, removed := DiffImages(current, original)

	var (
		result models.SyncResult
		g      errgroup.Group
	)
	g.Go(func() error {
		result.Uploaded, result.Added = s.uploadAndLink(ctx, roomID, newImages)
		return nil
	})
	g.Go(func() error {
		result.Deleted = s.deleteImages(ctx, roomID, removed)
		return nil
	})
	_ = g.Wait()

	result.HasErrors = result.ComputeHasErrors()

	if err := s.cache.Invalidate(ctx, querycache.RoomDetailKey(roomID)); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed", "room_id", roomID, "error", err)
	}

	s.report(ctx, roomID, result)
	return result
}

func (s *imageService) uploadAndLink(ctx context.Context, roomID string, images []models.ImageRef) (uploaded, added []models.OperationOutcome) {
	if len(images) == 0 {
		return nil, nil
	}

	files := make([]*models.LocalFile, len(images))
	for i, img := range images {
		files[i] = img.File
	}
	uploaded = s.UploadImages(ctx, files)

	var urls []string
	for _, o := range uploaded {
		if o.Success {
			urls = append(urls, o.URL)
		}
	}
	if len(urls) == 0 {
		return uploaded, nil
	}

	s.setStatus(StatusLinking)
	err := safeCall(func() error { return s.api.AddRoomImages(ctx, roomID, urls) })

	added = make([]models.OperationOutcome, len(urls))
	for i, u := range urls {
		if err != nil {
			added[i] = models.OperationOutcome{URL: u, Error: client.ErrorMessage(err)}
		} else {
			added[i] = models.OperationOutcome{Success: true, URL: u}
		}
	}
	if err != nil {
		// the uploaded files stay in storage; nothing references them
		s.logger.Warn(ctx, "attaching images failed", "room_id", roomID, "count", len(urls), "error", err)
	}
	return uploaded, added
}

func (s *imageService) UploadImages(ctx context.Context, files []*models.LocalFile) []models.OperationOutcome {
	if len(files) == 0 {
		return nil
	}
	s.begin()
	defer s.end()
	s.setStatus(StatusUploading)

	return settleAll(ctx, s.limit, files, func(ctx context.Context, f *models.LocalFile) models.OperationOutcome {
		url, err := s.uploader.Upload(ctx, s.folder, f)
		if err != nil {
			s.logger.Warn(ctx, "image upload failed", "file", fileName(f), "error", err)
			return models.OperationOutcome{Error: client.ErrorMessage(err)}
		}
		return models.OperationOutcome{Success: true, URL: url}
	})
}

func (s *imageService) deleteImages(ctx context.Context, roomID string, images []models.RoomImage) []models.OperationOutcome {
	if len(images) == 0 {
		return nil
	}
	s.setStatus(StatusDeleting)

	return settleAll(ctx, s.limit, images, func(ctx context.Context, img models.RoomImage) models.OperationOutcome {
		return s.deleteImage(ctx, roomID, img)
	})
}

// deleteImage detaches img from the room, then purges the stored file. Only
// the detach decides the outcome.
func (s *imageService) deleteImage(ctx context.Context, roomID string, img models.RoomImage) models.OperationOutcome {
	if err := s.api.DeleteRoomImage(ctx, roomID, img.ID); err != nil {
		s.logger.Warn(ctx, "image detach failed", "room_id", roomID, "image_id", img.ID, "error", err)
		return models.OperationOutcome{URL: img.URL, Error: client.ErrorMessage(err)}
	}

	if img.URL != "" {
		if err := safeCall(func() error { return s.uploader.DeleteByURL(ctx, img.URL) }); err != nil {
			s.logger.Warn(ctx, "stored file purge failed", "url", img.URL, "error", err)
		}
	}
	return models.OperationOutcome{Success: true, URL: img.URL}
}

func (s *imageService) RollbackUploadedImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	s.begin()
	defer s.end()
	s.setStatus(StatusRollingBack)

	outcomes := settleAll(ctx, s.limit, urls, func(ctx context.Context, u string) models.OperationOutcome {
		if err := s.uploader.DeleteByURL(ctx, u); err != nil {
			return models.OperationOutcome{URL: u, Error: err.Error()}
		}
		return models.OperationOutcome{Success: true, URL: u}
	})

	for i, o := range outcomes {
		if !o.Success {
			s.logger.Warn(ctx, "rollback of uploaded image failed", "url", urls[i], "error", o.Error)
		}
	}
	s.logger.Info(ctx, "rolled back uploaded images", "total", len(urls), "failed", models.CountFailed(outcomes))
}

func (s *imageService) report(ctx context.Context, roomID string, r models.SyncResult) {
	if n := models.CountFailed(r.Uploaded); n > 0 {
		s.notifier.Warning(fmt.Sprintf("%d image(s) failed to upload", n))
	}
	if n := models.CountFailed(r.Added); n > 0 {
		s.notifier.Warning(fmt.Sprintf("%d image(s) failed to attach", n))
	}
	if n := models.CountFailed(r.Deleted); n > 0 {
		s.notifier.Warning(fmt.Sprintf("%d image(s) failed to delete", n))
	}

	added, deleted := models.CountSucceeded(r.Added), models.CountSucceeded(r.Deleted)
	if added+deleted > 0 {
		s.notifier.Success(fmt.Sprintf("Images: %d added, %d deleted", added, deleted))
	}

	s.logger.Info(ctx, "images synced",
		"room_id", roomID,
		"uploaded", models.CountSucceeded(r.Uploaded),
		"added", added,
		"deleted", deleted,
		"has_errors", r.HasErrors,
	)
}

// begin marks an operation as running. Only the first of nested
// operations announces StatusSyncing.
func (s *imageService) begin() {
	s.mu.Lock()
	s.active++
	first := s.active == 1
	s.mu.Unlock()
	if first {
		s.setStatus(StatusSyncing)
	}
}

func (s *imageService) end() {
	s.mu.Lock()
	s.active--
	idle := s.active == 0
	s.mu.Unlock()
	if idle {
		s.setStatus(StatusIdle)
	}
}

func (s *imageService) setStatus(status string) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	fn := s.observer
	s.mu.Unlock()

	if fn != nil {
		fn(status)
	}
}

func (s *imageService) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active > 0
}

func (s *imageService) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *imageService) OnStatus(fn func(status string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

func fileName(f *models.LocalFile) string {
	if f == nil {
		return ""
	}
	return f.Name
}
