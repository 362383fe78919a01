package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	audittrail "vellum/contexts/audit-trail/audit-service"
	auditpostgres "vellum/contexts/audit-trail/audit-service/adapters/postgres"
	auditapp "vellum/contexts/audit-trail/audit-service/application"
	auditentities "vellum/contexts/audit-trail/audit-service/domain/entities"
	content "vellum/contexts/content-management/content-service"
	contentpostgres "vellum/contexts/content-management/content-service/adapters/postgres"
	contentports "vellum/contexts/content-management/content-service/ports"
	workflow "vellum/contexts/content-management/workflow-service"
	workflowpostgres "vellum/contexts/content-management/workflow-service/adapters/postgres"
	workflowworkers "vellum/contexts/content-management/workflow-service/application/workers"
	workflowports "vellum/contexts/content-management/workflow-service/ports"
	access "vellum/contexts/identity-access/access-service"
	accesspostgres "vellum/contexts/identity-access/access-service/adapters/postgres"
	accessentities "vellum/contexts/identity-access/access-service/domain/entities"
	accessports "vellum/contexts/identity-access/access-service/ports"
	"vellum/internal/platform/config"
	"vellum/internal/platform/db"
	"vellum/internal/platform/httpserver"
	"vellum/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres

	scheduledPublisher workflowworkers.ScheduledPublisher
	outboxRelay        workflowworkers.OutboxRelay
	sweepEnabled       bool
	relayEnabled       bool

	pollInterval time.Duration
	logger       *slog.Logger
}

// Modules bundles the four bounded contexts behind the HTTP surface.
type Modules struct {
	Content  content.Module
	Workflow workflow.Module
	Audit    audittrail.Module
	Access   access.Module
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	app := &APIApp{logger: logger}
	var modules Modules
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		modules = BuildInMemoryModules(nil, logger)
	} else {
		pg, pgErr := connectAndMigrate(cfg.PostgresDSN)
		if pgErr != nil {
			return nil, pgErr
		}
		app.postgres = pg
		modules = buildPostgresModules(pg, cfg, logger)
	}

	app.server = httpserver.New(
		modules.Content,
		modules.Workflow,
		modules.Audit,
		modules.Access,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	app := &WorkerApp{
		sweepEnabled: cfg.EnableScheduledPublishing,
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}

	var modules Modules
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		modules = BuildInMemoryModules(nil, logger)
	} else {
		pg, pgErr := connectAndMigrate(cfg.PostgresDSN)
		if pgErr != nil {
			return nil, pgErr
		}
		app.postgres = pg
		modules = buildPostgresModules(pg, cfg, logger)
	}

	app.scheduledPublisher = modules.Workflow.ScheduledPublisher
	app.scheduledPublisher.BatchSize = cfg.WorkerBatchSize
	app.outboxRelay = modules.Workflow.OutboxRelay
	app.outboxRelay.BatchSize = cfg.WorkerBatchSize
	return app, nil
}

// BuildInMemoryModules wires every context against in-memory adapters. Used
// for local development without Postgres and reused by integration tests.
func BuildInMemoryModules(publisher workflowports.EventPublisher, logger *slog.Logger) Modules {
	auditModule := audittrail.NewInMemoryModule(logger)

	// Seed one administrator so a fresh in-memory process is operable.
	seedUsers := []accessentities.User{{
		UserID:      "admin",
		Email:       "admin@vellum.local",
		DefaultRole: accessentities.RoleAdmin,
		CreatedAt:   time.Now().UTC(),
	}}
	accessModule := access.NewInMemoryModule(seedUsers, accessAuditSink{service: auditModule.Service}, logger)

	if publisher == nil {
		bus, _ := messaging.NewKafka(nil, logger)
		publisher = bus
	}

	contentModule := content.NewInMemoryModule(
		nil,
		auditRecorderSink{service: auditModule.Service},
		accessModule.Service,
		logger,
	)
	workflowModule := workflow.NewInMemoryModule(
		nil,
		workflowAuditSink{service: auditModule.Service},
		publisher,
		accessModule.Service,
		logger,
	)

	return Modules{
		Content:  contentModule,
		Workflow: workflowModule,
		Audit:    auditModule,
		Access:   accessModule,
	}
}

func buildPostgresModules(pg *db.Postgres, cfg config.Config, logger *slog.Logger) Modules {
	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	auditModule := audittrail.NewModule(audittrail.Dependencies{
		Repository: auditRepo,
		Clock:      auditpostgres.SystemClock{},
		IDGen:      auditpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	accessModule := access.NewModule(access.Dependencies{
		Repository: accessRepo,
		Directory:  accessRepo,
		Audit:      accessAuditSink{service: auditModule.Service},
		Clock:      accesspostgres.SystemClock{},
		IDGen:      accesspostgres.UUIDGenerator{},
		Logger:     logger,
	})

	// Content and workflow SQL adapters write their audit entries inside the
	// same transaction as the state change, so they bypass the recorder here.
	contentRepo := contentpostgres.NewRepository(pg.DB, logger)
	contentModule := content.NewModule(content.Dependencies{
		Repository: contentRepo,
		Versions:   contentRepo,
		Gate:       accessModule.Service,
		Clock:      contentpostgres.SystemClock{},
		IDGen:      contentpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	bus, _ := messaging.NewKafka(nil, logger)
	workflowRepo := workflowpostgres.NewRepository(pg.DB, logger)
	workflowModule := workflow.NewModule(workflow.Dependencies{
		Repository: workflowRepo,
		Scheduler:  workflowRepo,
		Outbox:     workflowRepo,
		Publisher:  bus,
		Gate:       accessModule.Service,
		Clock:      workflowpostgres.SystemClock{},
		IDGen:      workflowpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	return Modules{
		Content:  contentModule,
		Workflow: workflowModule,
		Audit:    auditModule,
		Access:   accessModule,
	}
}

func connectAndMigrate(dsn string) (*db.Postgres, error) {
	if err := db.RunMigrations(dsn); err != nil {
		return nil, err
	}
	return db.Connect(dsn)
}

// auditRecorderSink adapts the audit-trail recorder to the content service's
// in-process audit contract.
type auditRecorderSink struct {
	service auditapp.Service
}

func (s auditRecorderSink) Record(ctx context.Context, entry contentports.AuditEntry) error {
	_, err := s.service.Record(ctx, auditapp.RecordInput{
		UserID:       entry.UserID,
		Action:       auditentities.Action(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Metadata:     entry.Metadata,
	})
	return err
}

type workflowAuditSink struct {
	service auditapp.Service
}

func (s workflowAuditSink) Record(ctx context.Context, entry workflowports.AuditEntry) error {
	_, err := s.service.Record(ctx, auditapp.RecordInput{
		UserID:       entry.UserID,
		Action:       auditentities.Action(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Metadata:     entry.Metadata,
	})
	return err
}

type accessAuditSink struct {
	service auditapp.Service
}

func (s accessAuditSink) Record(ctx context.Context, entry accessports.AuditEntry) error {
	_, err := s.service.Record(ctx, auditapp.RecordInput{
		UserID:       entry.UserID,
		Action:       auditentities.Action(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Metadata:     entry.Metadata,
	})
	return err
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"scheduled_publishing", w.sweepEnabled,
		"outbox_relay", w.relayEnabled,
	)

	for {
		if w.sweepEnabled {
			if err := w.scheduledPublisher.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
