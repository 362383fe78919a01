package workflow

import (
	"log/slog"

	httpadapter "vellum/contexts/content-management/workflow-service/adapters/http"
	"vellum/contexts/content-management/workflow-service/adapters/memory"
	"vellum/contexts/content-management/workflow-service/application/commands"
	"vellum/contexts/content-management/workflow-service/application/queries"
	"vellum/contexts/content-management/workflow-service/application/workers"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	"vellum/contexts/content-management/workflow-service/ports"
)

// Module is the workflow-service composition root exposed to runtime wiring.
type Module struct {
	Handler            httpadapter.Handler
	ScheduledPublisher workers.ScheduledPublisher
	OutboxRelay        workers.OutboxRelay
	Store              *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Scheduler  ports.Scheduler
	Outbox     ports.OutboxRepository
	Publisher  ports.EventPublisher
	Gate       ports.EditGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitForReviewUseCase{
				Repo:   deps.Repository,
				Gate:   deps.Gate,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			RequestChanges: commands.RequestChangesUseCase{
				Repo:   deps.Repository,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Approve: commands.ApproveUseCase{
				Repo:   deps.Repository,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Publish: commands.PublishUseCase{
				Repo:   deps.Repository,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Schedule: commands.ScheduleUseCase{
				Repo:   deps.Repository,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			Unpublish: commands.UnpublishUseCase{
				Repo:   deps.Repository,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			GetWorkflow:       queries.GetWorkflowUseCase{Repo: deps.Repository},
			GetActiveWorkflow: queries.GetActiveWorkflowUseCase{Repo: deps.Repository},
			Logger:            deps.Logger,
		},
		ScheduledPublisher: workers.ScheduledPublisher{
			Repo:      deps.Repository,
			Scheduler: deps.Scheduler,
			Clock:     deps.Clock,
			IDGen:     deps.IDGen,
			Logger:    deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(seed []entities.ContentRef, audit memory.AuditSink, publisher ports.EventPublisher, gate ports.EditGate, logger *slog.Logger) Module {
	store := memory.NewStore(seed, audit)
	module := NewModule(Dependencies{
		Repository: store,
		Scheduler:  store,
		Outbox:     store,
		Publisher:  publisher,
		Gate:       gate,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
