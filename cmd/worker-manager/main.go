// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scholarship-workers/internal/chat"
	commonaws "scholarship-workers/internal/common/aws"
	"scholarship-workers/internal/common/camunda"
	"scholarship-workers/internal/common/config"
	"scholarship-workers/internal/common/database"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/observability"
	"scholarship-workers/internal/httpapi"
	"scholarship-workers/internal/notify"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/scholarship"
	"scholarship-workers/internal/search"
	"scholarship-workers/internal/tracker"
	"scholarship-workers/pkg/registry"

	// Eligibility
	ee "scholarship-workers/internal/workers/eligibility/evaluate-eligibility"
	ord "scholarship-workers/internal/workers/eligibility/order-scholarships"

	// Profile, tracking and search
	sps "scholarship-workers/internal/workers/profile/save-profile-step"
	ss "scholarship-workers/internal/workers/search/search-scholarships"
	ta "scholarship-workers/internal/workers/tracker/track-application"

	// Chat and communication
	cr "scholarship-workers/internal/workers/chat/chatbot-reply"
	swe "scholarship-workers/internal/workers/communication/send-welcome-email"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// datastores holds the connections opened at startup. Postgres and
// Elasticsearch are nil when not configured.
type datastores struct {
	redis    *database.RedisClient
	postgres *database.PostgresClient
	es       *database.ElasticsearchClient
}

func (d *datastores) Close() {
	_ = d.redis.Close()
	_ = d.postgres.Close()
}

func connectDatastores(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (*datastores, error) {
	ds := &datastores{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return retryWithBackoff(func() error {
			var err error
			ds.redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return ds.redis.Ping(gctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
	})

	if cfg.Profile.MirrorEnabled {
		g.Go(func() error {
			return retryWithBackoff(func() error {
				var err error
				ds.postgres, err = database.NewPostgres(cfg.Database.Postgres)
				if err != nil {
					return err
				}
				return ds.postgres.Ping(gctx)
			}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		})
	}

	if cfg.SearchEnabled() {
		g.Go(func() error {
			return retryWithBackoff(func() error {
				var err error
				ds.es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
				if err != nil {
					return err
				}
				return ds.es.Ping(gctx)
			}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		})
	}

	if err := g.Wait(); err != nil {
		ds.Close()
		return nil, err
	}
	return ds, nil
}

func openProfileStore(ctx context.Context, cfg *config.Config, ds *datastores) (profile.Store, func(), error) {
	if cfg.Profile.Store != config.ProfileStoreSQLite {
		return profile.NewRedisStore(ds.redis.Client), func() {}, nil
	}
	db, err := database.OpenSQLite(ctx, cfg.Profile.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	store, err := profile.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, func() { _ = db.Close() }, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if err := scholarship.Validate(); err != nil {
		zapLog.Fatal("scholarship catalog is inconsistent", zap.Error(err))
	}

	activities := registry.Builtin()
	configured := make([]string, 0, len(cfg.Workers))
	for name := range cfg.Workers {
		configured = append(configured, name)
	}
	for _, name := range activities.UnknownTaskTypes(configured) {
		zapLog.Warn("worker config has no matching activity", zap.String("taskType", name))
	}

	obs, err := observability.New("worker-manager")
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			MessageTTL:             config.GetDuration(cfg.Camunda.MessageTTL),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Datastores ---
	ds, err := connectDatastores(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("datastore initialization failed", zap.Error(err))
	}
	defer ds.Close()
	zapLog.Info("Datastores connected",
		zap.Bool("postgresMirror", ds.postgres != nil),
		zap.Bool("search", ds.es != nil),
	)

	// --- Profiles ---
	store, closeStore, err := openProfileStore(ctx, cfg, ds)
	if err != nil {
		zapLog.Fatal("profile store initialization failed", zap.Error(err))
	}
	defer closeStore()

	var mirror profile.Mirror
	wizardOpts := []profile.Option{
		profile.WithLogger(log),
		profile.WithMirrorTimeout(config.GetDuration(cfg.Profile.MirrorTimeout)),
		profile.WithCompletionHook(profile.PublishCompletion(zeebe)),
	}
	if ds.postgres != nil {
		pm := profile.NewPostgresMirror(ds.postgres.DB)
		if err := pm.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("profile mirror schema failed", zap.Error(err))
		}
		mirror = pm
		wizardOpts = append(wizardOpts, profile.WithMirror(pm))
	}
	profiles := profile.NewRepository(store, mirror, config.GetDuration(cfg.Profile.CacheTTL), log)
	wizard := profile.NewWizard(store, append(wizardOpts, profile.WithLoader(profiles))...)

	// --- Domain services ---
	applications := tracker.New(ds.redis.Client)

	genai := chat.NewGenAIClient(chat.GenAIConfig{
		BaseURL:     cfg.APIs.GenAI.BaseURL,
		APIKey:      cfg.APIs.GenAI.APIKey,
		Model:       cfg.APIs.GenAI.Model,
		MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		Temperature: cfg.APIs.GenAI.Temperature,
		MaxRetries:  cfg.APIs.GenAI.MaxRetries,
		Timeout:     config.GetDuration(cfg.APIs.GenAI.Timeout),
	})
	if !genai.Configured() {
		zapLog.Warn("generative API key not set, chat will answer from the catalog and fallbacks only")
	}
	assistant := chat.NewAssistant(genai, profiles, log)

	welcome, err := newWelcomeSender(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("notification clients failed", zap.Error(err))
	}

	var index *search.Index
	if ds.es != nil {
		index = search.NewIndex(ds.es.Client, cfg.Search.Index, log)
		if err := index.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("search index setup failed", zap.Error(err))
		}
		if cfg.Search.SyncOnStartup {
			n, err := index.Sync(ctx, scholarship.Entries())
			if err != nil {
				zapLog.Error("catalog sync failed", zap.Error(err))
			} else {
				zapLog.Info("catalog indexed", zap.Int("documents", n), zap.String("index", index.Name()))
			}
		}
	}

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(client, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, obs, zapLog))
	}
	timeout := func(taskType string) time.Duration {
		if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
			return config.GetDuration(w.Timeout)
		}
		return activities.TimeoutFor(taskType, 30*time.Second)
	}

	start(ee.TaskType, ee.NewHandler(&ee.Config{Timeout: timeout(ee.TaskType)}, profiles, log).Handle)
	start(ord.TaskType, ord.NewHandler(&ord.Config{Timeout: timeout(ord.TaskType)}, profiles, log).Handle)
	start(sps.TaskType, sps.NewHandler(&sps.Config{Timeout: timeout(sps.TaskType)}, wizard, log).Handle)
	start(ta.TaskType, ta.NewHandler(&ta.Config{Timeout: timeout(ta.TaskType)}, applications, log).Handle)
	start(cr.TaskType, cr.NewHandler(&cr.Config{
		Timeout:    timeout(cr.TaskType),
		MaxMessage: cr.LoadConfig().MaxMessage,
	}, assistant, log).Handle)
	start(swe.TaskType, swe.NewHandler(&swe.Config{Timeout: timeout(swe.TaskType)}, welcome, log).Handle)
	if index != nil {
		start(ss.TaskType, ss.NewHandler(&ss.Config{Timeout: timeout(ss.TaskType)}, index, log).Handle)
	} else {
		zapLog.Info("worker disabled, no search endpoint", zap.String("taskType", ss.TaskType))
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- HTTP API ---
	deps := httpapi.Deps{
		Chat:           assistant,
		Welcome:        welcome,
		Profiles:       profiles,
		Logger:         log,
		ChatRatePerSec: cfg.Server.ChatRatePerSec,
		ChatBurst:      cfg.Server.ChatBurst,
	}
	if index != nil {
		deps.Search = index
	}
	api := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           httpapi.NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("API server listening", zap.String("addr", api.Addr))
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("API server failed", zap.Error(err))
		}
	}()

	// --- Health & Metrics Server ---
	health := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HealthPort),
		Handler:           healthMux(zeebe, ds),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", health.Addr))
		if err := health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := api.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping API server", zap.Error(err))
	}
	if err := health.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	// pending mirror writes and completion messages
	wizard.Wait()

	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping otel metrics", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func newWelcomeSender(ctx context.Context, cfg *config.Config, log logger.Logger) (*notify.WelcomeSender, error) {
	awsCfg := cfg.Integrations.AWS
	var (
		email notify.EmailSender
		sms   notify.SMSSender
	)
	if awsCfg.SES.Enabled || awsCfg.SNS.Enabled {
		ac, err := commonaws.LoadConfig(ctx, awsCfg.Region)
		if err != nil {
			return nil, err
		}
		if awsCfg.SES.Enabled {
			email = commonaws.NewSESClient(ac)
		}
		if awsCfg.SNS.Enabled && cfg.Notifications.SMS.Enabled {
			sms = commonaws.NewSNSClient(ac, awsCfg.SNS.DefaultSMSSenderID)
		}
	}
	return notify.NewWelcomeSender(notify.Config{
		FromEmail: awsCfg.SES.FromEmail,
		FromName:  cfg.Notifications.FromName,
		AppURL:    cfg.Notifications.AppURL,
	}, email, sms, log), nil
}

func healthMux(zeebe *camunda.Client, ds *datastores) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		check := func(name string, ping func(context.Context) error) {
			if err := ping(ctx); err != nil {
				checks[name] = err.Error()
				ready = false
				return
			}
			checks[name] = "ok"
		}
		check("zeebe", zeebe.HealthCheck)
		check("redis", ds.redis.Ping)
		if ds.postgres != nil {
			check("postgres", ds.postgres.Ping)
		}
		if ds.es != nil {
			check("elasticsearch", ds.es.Ping)
		}

		if !ready {
			writeStatus(w, http.StatusServiceUnavailable, "not_ready", checks)
			return
		}
		writeStatus(w, http.StatusOK, "ready", checks)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}
