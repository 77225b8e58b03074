package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomSvc(fc *fakeClient, cache *memCache, n Notifier) RoomService {
	images := NewImageService(fc, nil, cache, ImageServiceOptions{Concurrency: 2, Notifier: n})
	return NewRoomService(fc, images, cache, n, nil)
}

func TestRoomCreate_UploadsThenCreates(t *testing.T) {
	var sent models.RoomDraft
	fc := &fakeClient{
		upload: func(f *models.LocalFile) (string, error) { return "https://cdn/" + f.Name, nil },
		createRoom: func(d models.RoomDraft) (*models.Room, error) {
			sent = d
			return &models.Room{ID: "r1", Name: d.Name}, nil
		},
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	room, err := svc.Create(context.Background(), models.RoomDraft{Name: "Deluxe"}, []models.ImageRef{
		{URL: "https://cdn/existing.jpg"},
		localImage("a.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", room.ID)
	assert.Equal(t, []models.ImageURL{{URL: "https://cdn/existing.jpg"}, {URL: "https://cdn/a.jpg"}}, sent.Images)
	assert.Equal(t, []string{querycache.RoomsListPrefix}, cache.invalidated)
}

func TestRoomCreate_FailedUploadIsNotFatal(t *testing.T) {
	var sent models.RoomDraft
	fc := &fakeClient{
		upload: func(f *models.LocalFile) (string, error) {
			if f.Name == "bad.jpg" {
				return "", errors.New("unsupported")
			}
			return "https://cdn/" + f.Name, nil
		},
		createRoom: func(d models.RoomDraft) (*models.Room, error) {
			sent = d
			return &models.Room{ID: "r1"}, nil
		},
	}
	n := &recordingNotifier{}
	svc := newRoomSvc(fc, newMemCache(), n)

	_, err := svc.Create(context.Background(), models.RoomDraft{Name: "A"}, []models.ImageRef{localImage("ok.jpg"), localImage("bad.jpg")})
	require.NoError(t, err)
	assert.Equal(t, []models.ImageURL{{URL: "https://cdn/ok.jpg"}}, sent.Images)
	assert.Equal(t, []string{"1 image(s) failed to upload"}, n.warnings)
}

func TestRoomCreate_RollbackOnFailure(t *testing.T) {
	createErr := &client.APIError{StatusCode: 400, Message: "name required"}
	fc := &fakeClient{
		upload: func(f *models.LocalFile) (string, error) { return "https://cdn/" + f.Name, nil },
		deleteByURL: func(url string) error {
			if url == "https://cdn/b.jpg" {
				return errors.New("purge failed")
			}
			return nil
		},
		createRoom: func(d models.RoomDraft) (*models.Room, error) { return nil, createErr },
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	_, err := svc.Create(context.Background(), models.RoomDraft{}, []models.ImageRef{
		localImage("a.jpg"), localImage("b.jpg"), {URL: "https://cdn/hosted.jpg"},
	})

	require.Error(t, err)
	assert.Same(t, createErr, err, "the creation error is returned unchanged")
	assert.Equal(t, 2, fc.count("purge"))
	assert.Equal(t, 0, fc.count("purge https://cdn/hosted.jpg"))
	assert.Empty(t, cache.invalidated)
}

func TestRoomUpdate_FullFlow(t *testing.T) {
	var amenities []models.AmenityAssignment
	fc := &fakeClient{
		updateRoom:      func(id string, d models.RoomDraft) (*models.Room, error) { return &models.Room{ID: id}, nil },
		upload:          func(f *models.LocalFile) (string, error) { return "https://cdn/" + f.Name, nil },
		addRoomImages:   func(roomID string, urls []string) error { return nil },
		deleteRoomImage: func(roomID, imageID string) error { return nil },
		updateAmen: func(roomID string, a []models.AmenityAssignment) error {
			amenities = a
			return nil
		},
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	original := &models.Room{
		ID:        "r1",
		Images:    []models.RoomImage{{ID: "img1", URL: "u1"}, {ID: "img2", URL: "u2"}},
		Amenities: []models.RoomAmenity{{ID: "a1"}, {ID: "a2"}},
	}
	current := []models.ImageRef{{ID: "img1", URL: "u1"}, localImage("n.jpg")}

	res, err := svc.Update(context.Background(), original, models.RoomDraft{Name: "X", AmenityIDs: []string{"a2", "a3"}}, current)
	require.NoError(t, err)
	assert.False(t, res.HasErrors)
	assert.Len(t, res.Added, 1)
	assert.Len(t, res.Deleted, 1)
	assert.Equal(t, []models.AmenityAssignment{{AmenityID: "a2"}, {AmenityID: "a3"}}, amenities)

	assert.Equal(t, []string{
		querycache.RoomDetailKey("r1"),
		querycache.RoomsListPrefix,
		querycache.RoomDetailKey("r1"),
	}, cache.invalidated)
}

func TestRoomUpdate_SameAmenitySetSkipsCall(t *testing.T) {
	fc := &fakeClient{
		updateRoom: func(id string, d models.RoomDraft) (*models.Room, error) { return &models.Room{ID: id}, nil },
	}
	svc := newRoomSvc(fc, newMemCache(), nil)

	original := &models.Room{ID: "r1", Amenities: []models.RoomAmenity{{ID: "a1"}, {ID: "a2"}}}
	_, err := svc.Update(context.Background(), original, models.RoomDraft{AmenityIDs: []string{"a2", "a1", "a1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, fc.count("amenities"))
}

func TestRoomUpdate_RoomFailureStopsEverything(t *testing.T) {
	fc := &fakeClient{
		updateRoom: func(id string, d models.RoomDraft) (*models.Room, error) { return nil, errors.New("conflict") },
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	original := &models.Room{ID: "r1", Images: []models.RoomImage{{ID: "img1"}}}
	_, err := svc.Update(context.Background(), original, models.RoomDraft{AmenityIDs: []string{"a9"}}, nil)
	require.EqualError(t, err, "conflict")
	assert.Equal(t, 0, fc.count("detach"))
	assert.Equal(t, 0, fc.count("amenities"))
	assert.Empty(t, cache.invalidated)
}

func TestRoomUpdate_AmenityFailureOnlyWarns(t *testing.T) {
	fc := &fakeClient{
		updateRoom: func(id string, d models.RoomDraft) (*models.Room, error) { return &models.Room{ID: id}, nil },
		updateAmen: func(roomID string, a []models.AmenityAssignment) error {
			return &client.APIError{StatusCode: 422, Message: "unknown amenity"}
		},
	}
	n := &recordingNotifier{}
	svc := newRoomSvc(fc, newMemCache(), n)

	_, err := svc.Update(context.Background(), &models.Room{ID: "r1"}, models.RoomDraft{AmenityIDs: []string{"zz"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Failed to update amenities: unknown amenity"}, n.warnings)
}

func TestRoomUpdate_MissingOriginal(t *testing.T) {
	svc := newRoomSvc(&fakeClient{}, newMemCache(), nil)
	_, err := svc.Update(context.Background(), nil, models.RoomDraft{}, nil)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestRoomGet_ReadThrough(t *testing.T) {
	fc := &fakeClient{
		getRoom: func(id string) (*models.Room, error) { return &models.Room{ID: id, Name: "Suite"}, nil },
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)
	ctx := context.Background()

	r1, err := svc.Get(ctx, "r1")
	require.NoError(t, err)
	r2, err := svc.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, fc.count("getRoom"))

	require.NoError(t, cache.Invalidate(ctx, querycache.RoomDetailKey("r1")))
	_, err = svc.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, fc.count("getRoom"))
}

func TestRoomGet_CacheErrorFallsBackToAPI(t *testing.T) {
	fc := &fakeClient{
		getRoom: func(id string) (*models.Room, error) { return &models.Room{ID: id}, nil },
	}
	cache := newMemCache()
	cache.getErr = errors.New("disk full")
	svc := newRoomSvc(fc, cache, nil)

	room, err := svc.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", room.ID)
}

func TestRoomGet_ErrorNotCached(t *testing.T) {
	fc := &fakeClient{
		getRoom: func(id string) (*models.Room, error) { return nil, client.ErrNotFound },
	}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	_, err := svc.Get(context.Background(), "r1")
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Empty(t, cache.entries)
}

func TestRoomList_CachedPerQuery(t *testing.T) {
	fc := &fakeClient{
		listRooms: func(p models.RoomListParams) (models.Page[models.Room], error) {
			return models.Page[models.Room]{Content: []models.Room{{ID: "r1"}}, TotalElements: 1}, nil
		},
	}
	svc := newRoomSvc(fc, newMemCache(), nil)
	ctx := context.Background()

	_, err := svc.List(ctx, models.RoomListParams{Search: "a"})
	require.NoError(t, err)
	_, err = svc.List(ctx, models.RoomListParams{Search: "a"})
	require.NoError(t, err)
	page, err := svc.List(ctx, models.RoomListParams{Search: "b"})
	require.NoError(t, err)

	assert.Equal(t, 2, fc.count("listRooms"))
	assert.Equal(t, 1, page.TotalElements)
}

func TestRoomDelete(t *testing.T) {
	fc := &fakeClient{deleteRoom: func(id string) error { return nil }}
	cache := newMemCache()
	svc := newRoomSvc(fc, cache, nil)

	require.NoError(t, svc.Delete(context.Background(), "r1"))
	assert.Equal(t, []string{querycache.RoomsListPrefix}, cache.invalidated)
	assert.Equal(t, []string{querycache.RoomDetailKey("r1")}, cache.removed)

	fc.deleteRoom = func(id string) error { return errors.New("in use") }
	require.Error(t, svc.Delete(context.Background(), "r2"))
}

func TestRoomPassword(t *testing.T) {
	fc := &fakeClient{
		getPassword: func(id string) (string, error) {
			if id == "none" {
				return "", client.ErrNotFound
			}
			return "4711", nil
		},
		setPassword: func(id, pw string) (string, error) { return pw, nil },
	}
	svc := newRoomSvc(fc, newMemCache(), nil)
	ctx := context.Background()

	pw, ok := svc.CurrentPassword(ctx, "r1")
	assert.True(t, ok)
	assert.Equal(t, "4711", pw)

	pw, ok = svc.CurrentPassword(ctx, "none")
	assert.False(t, ok)
	assert.Empty(t, pw)

	pw, err := svc.SetPassword(ctx, "r1", "1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", pw)
}

func TestSameSet(t *testing.T) {
	assert.True(t, sameSet(nil, []string{}))
	assert.True(t, sameSet([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, sameSet([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameSet([]string{"a", "c"}, []string{"a", "b"}))
}
