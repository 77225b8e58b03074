package services

import (
	"context"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
)

type AmenityService interface {
	List(ctx context.Context) ([]models.Amenity, error)
	Get(ctx context.Context, id string) (*models.Amenity, error)
	Create(ctx context.Context, a models.Amenity) (*models.Amenity, error)
	Update(ctx context.Context, a models.Amenity) (*models.Amenity, error)
	Delete(ctx context.Context, id string) error
}

type amenityService struct {
	client client.Client
	cache  querycache.Repository
	logger logging.Logger
}

func NewAmenityService(c client.Client, cache querycache.Repository, logger logging.Logger) AmenityService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &amenityService{client: c, cache: cache, logger: logger}
}

func (s *amenityService) List(ctx context.Context) ([]models.Amenity, error) {
	return readThrough(ctx, s.cache, s.logger, querycache.AmenitiesList, func() ([]models.Amenity, error) {
		return s.client.ListAmenities(ctx)
	})
}

func (s *amenityService) Get(ctx context.Context, id string) (*models.Amenity, error) {
	return s.client.GetAmenity(ctx, id)
}

func (s *amenityService) Create(ctx context.Context, a models.Amenity) (*models.Amenity, error) {
	out, err := s.client.CreateAmenity(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return out, nil
}

func (s *amenityService) Update(ctx context.Context, a models.Amenity) (*models.Amenity, error) {
	out, err := s.client.UpdateAmenity(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return out, nil
}

func (s *amenityService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteAmenity(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops amenity lists and room data, which embeds amenities.
func (s *amenityService) invalidate(ctx context.Context) {
	for _, prefix := range []string{querycache.AmenitiesList, querycache.RoomsPrefix} {
		if err := s.cache.Invalidate(ctx, prefix); err != nil {
			s.logger.Warn(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
}

type ScheduleTypeService interface {
	List(ctx context.Context, p models.Pagination, search string) (models.Page[models.ScheduleType], error)
	// Create and Update take an optional image file; nil keeps the
	// current image.
	Create(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error)
	Update(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error)
	Delete(ctx context.Context, id string) error
}

type scheduleTypeService struct {
	client client.Client
}

func NewScheduleTypeService(c client.Client) ScheduleTypeService {
	return &scheduleTypeService{client: c}
}

func (s *scheduleTypeService) List(ctx context.Context, p models.Pagination, search string) (models.Page[models.ScheduleType], error) {
	return s.client.ListScheduleTypes(ctx, p, search)
}

func (s *scheduleTypeService) Create(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
	return s.client.CreateScheduleType(ctx, st, image)
}

func (s *scheduleTypeService) Update(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
	return s.client.UpdateScheduleType(ctx, st, image)
}

func (s *scheduleTypeService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteScheduleType(ctx, id)
}
