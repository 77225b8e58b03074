package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmenityService_ListCachedUntilWrite(t *testing.T) {
	fc := &fakeClient{
		listAmenities: func() ([]models.Amenity, error) { return []models.Amenity{{ID: "a1", Name: "Wifi"}}, nil },
		createAmenity: func(a models.Amenity) (*models.Amenity, error) {
			a.ID = "a2"
			return &a, nil
		},
	}
	cache := newMemCache()
	svc := NewAmenityService(fc, cache, nil)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.count("listAmenities"))

	created, err := svc.Create(ctx, models.Amenity{Name: "TV"})
	require.NoError(t, err)
	assert.Equal(t, "a2", created.ID)
	assert.Equal(t, []string{querycache.AmenitiesList, querycache.RoomsPrefix}, cache.invalidated)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.count("listAmenities"))
}

func TestScheduleTypeService_PassesImage(t *testing.T) {
	img := &models.LocalFile{Name: "yoga.png", Data: []byte{1}}
	var gotImage *models.LocalFile
	fc := &fakeClient{
		createSchedule: func(st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
			gotImage = image
			st.ID = "s1"
			return &st, nil
		},
	}
	svc := NewScheduleTypeService(fc)

	st, err := svc.Create(context.Background(), models.ScheduleType{Name: "Yoga"}, img)
	require.NoError(t, err)
	assert.Equal(t, "s1", st.ID)
	assert.Same(t, img, gotImage)
}
