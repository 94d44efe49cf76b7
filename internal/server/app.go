// Package server initializes and runs the collaboration server: the
// durable store, the REST surface, the websocket gateway, and the daily
// backup scheduler, with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/backup"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/chat"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/config"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/httpapi"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/repomanager"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger

	repos          repomanager.RepositoryManager
	userService    *services.UserService
	noteService    *services.NoteService
	messageService *services.MessageService

	gateway   *chat.Gateway
	scheduler *backup.Scheduler
	server    *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), c.SecretKey, c.TokenValidityDuration)
	ns := services.NewNoteService(rm.Users(), rm.Notes())
	ms := services.NewMessageService(rm.Users(), rm.Messages())

	registry := chat.NewRegistry()
	gateway := chat.NewGateway(registry, ms, us, logger)

	uploader, err := backup.NewS3Uploader(context.Background(), backup.S3Options{
		Region:       c.S3Region,
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("blob storage init error: %w", err)
	}
	scheduler := backup.NewScheduler(ms, uploader, logger, c.BackupHour, c.S3Prefix, c.BackupTimeout)

	api := httpapi.NewAPI(us, ns, ms, http.HandlerFunc(gateway.HandleWebSocket), httpapi.GeminiConfig{
		APIKey:   c.GeminiAPIKey,
		Endpoint: c.GeminiEndpoint,
	}, logger)
	srv := httpapi.NewServer(c.EndpointAddr, api.Routes(), logger)

	return &App{
		config:         c,
		logger:         logger,
		repos:          rm,
		userService:    us,
		noteService:    ns,
		messageService: ms,
		gateway:        gateway,
		scheduler:      scheduler,
		server:         srv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	roster := make([]services.RosterUser, 0, len(app.config.Roster))
	for _, entry := range app.config.Roster {
		roster = append(roster, services.RosterUser{
			Name:     entry.Name,
			Password: entry.Password,
			Role:     entry.Role,
		})
	}
	if err := app.userService.EnsureRoster(ctx, roster); err != nil {
		app.logger.Error(ctx, "roster seeding failed", "error", err)
		if cerr := app.repos.Close(); cerr != nil {
			app.logger.Error(ctx, "db close error", "error", cerr)
		}
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.scheduler.Run(ctx)
	}()

	wg.Wait()

	app.gateway.Shutdown()
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
