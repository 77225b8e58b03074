package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/config"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories"
	"github.com/dmitrijs2005/roomadmin/internal/client/services"
	"github.com/dmitrijs2005/roomadmin/internal/client/storage"
	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  *repositories.Repositories

	authService         services.AuthService
	roomService         services.RoomService
	imageService        services.ImageService
	timeSlotService     services.TimeSlotService
	amenityService      services.AmenityService
	scheduleTypeService services.ScheduleTypeService

	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database and wires the REST client, the upload
// backend and the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	repos, err := repositories.InitDatabase(ctx, c.CacheDSN, c.CacheTTL)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(client.Options{
		BaseURL:       c.APIBaseURL,
		Timeout:       c.RequestTimeout,
		RetryLimit:    c.RetryLimit,
		RetryBackoff:  c.RetryBackoff,
		RefreshLeeway: c.TokenRefreshLeeway,
		Logger:        logger.With("component", "http"),
	})
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	uploader, err := newUploader(ctx, c, apiClient)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	notifier := newConsoleNotifier(os.Stdout)
	images := services.NewImageService(apiClient, uploader, repos.Cache, services.ImageServiceOptions{
		Folder:      common.UploadFolder(c.UploadFolder),
		Concurrency: c.UploadConcurrency,
		Notifier:    notifier,
		Logger:      logger.With("component", "images"),
	})

	a := &App{
		config:              c,
		logger:              logger,
		repos:               repos,
		authService:         services.NewAuthService(apiClient, repos.DB, repos.Cache, logger),
		roomService:         services.NewRoomService(apiClient, images, repos.Cache, notifier, logger),
		imageService:        images,
		timeSlotService:     services.NewTimeSlotService(apiClient, repos.Cache, logger),
		amenityService:      services.NewAmenityService(apiClient, repos.Cache, logger),
		scheduleTypeService: services.NewScheduleTypeService(apiClient),
		reader:              bufio.NewReader(os.Stdin),
		out:                 os.Stdout,
	}
	images.OnStatus(a.printStatus)
	return a, nil
}

// newUploader picks where image files go. The REST API is used unless the
// S3 backend is configured.
func newUploader(ctx context.Context, c *config.Config, api client.Uploader) (client.Uploader, error) {
	if c.UploadBackend != config.UploadBackendS3 {
		return api, nil
	}
	u, err := storage.NewS3Uploader(ctx, storage.Options{
		Endpoint:     c.S3.Endpoint,
		Region:       c.S3.Region,
		Bucket:       c.S3.Bucket,
		AccessKey:    c.S3.AccessKey,
		SecretKey:    c.S3.SecretKey,
		UsePathStyle: c.S3.UsePathStyle,
		PublicURL:    c.S3.PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 uploader: %w", err)
	}
	return u, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.repos != nil {
			_ = a.repos.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) printStatus(status string) {
	if status == services.StatusIdle {
		fmt.Fprintln(a.out, "[images] done")
		return
	}
	fmt.Fprintf(a.out, "[images] %s...\n", status)
}

// fail reports err to the user and returns it.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.logger.Debug(ctx, what, "error", err)
	fmt.Fprintf(a.out, "Error: %s: %s\n", what, client.ErrorMessage(err))
	return err
}
