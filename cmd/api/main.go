package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	"github.com/agropuls/backend-quote/internal/config"
	"github.com/agropuls/backend-quote/internal/draft"
	"github.com/agropuls/backend-quote/internal/health"
	"github.com/agropuls/backend-quote/internal/logo"
	"github.com/agropuls/backend-quote/internal/obs"
	"github.com/agropuls/backend-quote/internal/pricelist"
	"github.com/agropuls/backend-quote/internal/quote"
	"github.com/agropuls/backend-quote/internal/store"
	"github.com/agropuls/backend-quote/internal/supplier"
)

func main() {
	cfg := config.MustLoad()

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "quote")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Persistence is best effort: without Redis (or with a dead one) the
	// service runs on the in-memory store and nothing survives a restart.
	var kv store.KV = store.NewMemoryKV()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("parse redis url, falling back to in-memory store")
		} else {
			redisClient = redis.NewClient(redisOpts)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warn().Err(err).Msg("redis unreachable, continuing anyway")
			}
			kv = store.RedisKV{Client: redisClient}
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Error().Err(err).Msg("close redis")
				}
			}()
		}
	} else {
		logger.Info().Msg("REDIS_URL not set, using in-memory store")
	}

	docs := store.Docs{KV: kv, Log: logger}

	defaults := quote.Defaults{
		Number:       cfg.QuoteNumber,
		ValidityDays: cfg.QuoteValidityDays,
		Currency:     quote.Currency(cfg.DefaultCurrency),
		VatRate:      cfg.DefaultVatRate,
		Unit:         cfg.DefaultUnit,
		Country:      cfg.DefaultCountry,
	}
	registry := supplier.Registry{
		Defaults: quote.Party{
			Name:        cfg.SupplierName,
			Street:      cfg.SupplierStreet,
			City:        cfg.SupplierCity,
			Zip:         cfg.SupplierZip,
			Country:     cfg.SupplierCountry,
			Ico:         cfg.SupplierIco,
			Dic:         cfg.SupplierDic,
			Icdph:       cfg.SupplierIcdph,
			PhoneMobile: cfg.SupplierPhone,
		},
	}
	priceSvc := &pricelist.Service{
		Docs:     docs,
		Defaults: pricelist.DefaultItems(cfg.DefaultUnit, cfg.DefaultVatRate),
	}
	draftSvc := &draft.Service{
		Docs:     docs,
		Defaults: defaults,
		Registry: registry,
		Prices:   priceSvc,
	}

	validate := validator.New()
	draftHandler := &draft.Handler{Svc: draftSvc, Validate: validate}
	priceHandler := &pricelist.Handler{Svc: priceSvc}
	logoHandler := &logo.Handler{
		Proc:     logo.Processor{MaxDim: cfg.LogoMaxDimension},
		Svc:      draftSvc,
		Docs:     docs,
		MaxBytes: cfg.LogoMaxBytes,
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{redis: redisClient},
		StoreTimeout: envDurationMillis("HEALTH_READY_STORE_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/quote", func(q chi.Router) {
			q.Get("/", draftHandler.Get)
			q.Patch("/", draftHandler.Update)
			q.Get("/summary", draftHandler.Summary)
			q.Patch("/customer", draftHandler.UpdateCustomer)
			q.Post("/items", draftHandler.AddItem)
			q.Patch("/items/{id}", draftHandler.UpdateItem)
			q.Delete("/items/{id}", draftHandler.RemoveItem)
			q.Post("/items/from-pricelist", draftHandler.AddFromPriceList)
			q.Post("/reset", draftHandler.Reset)
		})

		v.Get("/pricelist", priceHandler.Get)
		v.Put("/pricelist", priceHandler.Put)

		v.Route("/suppliers", func(s chi.Router) {
			s.Get("/", draftHandler.Suppliers)
			s.Post("/", draftHandler.AddSupplier)
			s.Patch("/active", draftHandler.UpdateActiveSupplier)
			s.Get("/active/logo", logoHandler.Get)
			s.Post("/active/logo", logoHandler.Upload)
			s.Delete("/active/logo", logoHandler.Delete)
			s.Delete("/{id}", draftHandler.RemoveSupplier)
			s.Post("/{id}/activate", draftHandler.ActivateSupplier)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownDone := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
		close(shutdownDone)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	<-shutdownDone
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	redis *redis.Client
}

// PingStore probes Redis. The in-memory fallback has nothing to probe
// and always reports ready.
func (c readinessChecker) PingStore(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
