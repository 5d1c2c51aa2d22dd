package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/client"
	"github.com/dmitrijs2005/shaketracker/internal/client/config"
	"github.com/dmitrijs2005/shaketracker/internal/client/services"
	"github.com/dmitrijs2005/shaketracker/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config     *config.Config
	repos      *client.Repositories
	apiClient  api.Client
	auth       *services.AuthService
	profiles   *services.ProfileService
	quota      *services.QuotaTracker
	recorder   *services.ShakeRecorder
	reconciler *services.Reconciler
	userKey    string
	userName   string
	Mode       Mode
	reader     *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.BaseURL, repos.Credentials, logger)

	quota := services.NewQuotaTracker(repos.Counters, c.DailyShakeLimit)

	return &App{
		config:     c,
		repos:      repos,
		apiClient:  apiClient,
		auth:       services.NewAuthService(apiClient, repos.Credentials, repos.Overlay, logger),
		profiles:   services.NewProfileService(apiClient, repos.Overlay, logger),
		quota:      quota,
		recorder:   services.NewShakeRecorder(apiClient, quota, repos.Counters, repos.Shakes, logger),
		reconciler: services.NewReconciler(apiClient, repos.Counters, repos.Shakes, quota, logger),
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()
	defer a.apiClient.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userKey != ""
}

// StartOnlineStatusWatcher periodically pings the backend and flips the
// displayed mode between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
