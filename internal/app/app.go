// Package app wires configuration, services, and the HTTP router into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"retailpulse/internal/config"
	"retailpulse/internal/dataset"
	apierrors "retailpulse/internal/errors"
	"retailpulse/internal/infrastructure"
	custommiddleware "retailpulse/internal/middleware"
	"retailpulse/internal/services"
	transport "retailpulse/internal/transport/http"
	"retailpulse/internal/viz"
)

// Application metadata
const (
	AppName = "RetailPulse"
	Version = "1.0.0"
)

// Application holds the wired components of the server
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router
	Server *http.Server

	DataService   *services.DataService
	HealthService *services.HealthService
	Metrics       *infrastructure.Metrics

	manager *dataset.Manager
}

// NewApplication creates the application with all services wired
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("dataset", cfg.Dataset.Path))

	manager := dataset.NewManager(dataset.NewLoader(cfg.Dataset.Path, logger))

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		DataService:   services.NewDataService(manager, cfg.Dataset.Dir, logger),
		HealthService: services.NewHealthService(manager, Version, logger),
		Metrics:       infrastructure.NewMetrics(),
		manager:       manager,
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(a.Metrics.Middleware)
	r.Use(custommiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

	if a.Config.Security.EnableCORS {
		r.Use(custommiddleware.CORS(custommiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger)
		r.Use(limiter.Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	salesHandler := transport.NewSalesHandler(a.DataService, a.Logger, errorHandler)
	datasetHandler := transport.NewDatasetHandler(a.DataService, a.Logger, errorHandler)
	insightsHandler := transport.NewInsightsHandler(a.DataService, a.Logger, errorHandler)
	vizHandler := transport.NewVizHandler(viz.NewService(a.Logger), a.DataService, a.Logger, errorHandler)
	healthHandler := transport.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/sales", salesHandler.Routes())
		r.Get("/stores", salesHandler.GetStores)
		r.Mount("/datasets", datasetHandler.Routes())
		r.Mount("/insights", insightsHandler.Routes())
		r.Mount("/viz", vizHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})

	r.Handle("/metrics", a.Metrics.Handler())

	a.setupStaticRoutes(r)

	a.Router = r
}

// setupStaticRoutes serves the dashboard files when the web directory exists
func (a *Application) setupStaticRoutes(r chi.Router) {
	webDir := a.Config.Dataset.WebDir
	if info, err := os.Stat(webDir); err != nil || !info.IsDir() {
		a.Logger.Warn("web directory not found, static dashboard disabled",
			slog.String("dir", webDir))
		return
	}

	fs := http.FileServer(http.Dir(webDir))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, webDir+"/index.html")
	})
	r.Handle("/static/*", http.StripPrefix("/static/", fs))
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Address(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start launches the HTTP server and warms the dataset cache. Server errors
// cancel the provided context so main can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	go a.manager.Warm(a.Logger)

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if a.Config.Server.OpenBrowser {
		go a.openBrowserWhenReady(ctx)
	}

	return nil
}

// Stop gracefully shuts the server down
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "application stopped")
	return nil
}

// openBrowserWhenReady polls the health endpoint until the server answers,
// then opens the dashboard in the default browser.
func (a *Application) openBrowserWhenReady(ctx context.Context) {
	url := fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)
	healthURL := url + "/api/health"

	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resp, err := http.Get(healthURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			if err := openBrowser(url); err != nil {
				a.Logger.Warn("failed to open browser",
					slog.String("url", url),
					slog.String("error", err.Error()))
				fmt.Printf("%s is running at %s\n", AppName, url)
			}
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}

	a.Logger.Warn("server did not become ready for browser opening",
		slog.String("url", url))
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
