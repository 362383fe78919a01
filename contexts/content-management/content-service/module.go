package content

import (
	"log/slog"

	httpadapter "vellum/contexts/content-management/content-service/adapters/http"
	"vellum/contexts/content-management/content-service/adapters/memory"
	"vellum/contexts/content-management/content-service/application/commands"
	"vellum/contexts/content-management/content-service/application/queries"
	"vellum/contexts/content-management/content-service/domain/entities"
	"vellum/contexts/content-management/content-service/ports"
)

// Module is the content-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Versions   ports.VersionRepository
	Gate       ports.EditGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateContentUseCase{
				Contents: deps.Repository,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Update: commands.UpdateContentUseCase{
				Contents: deps.Repository,
				Gate:     deps.Gate,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Delete: commands.DeleteContentUseCase{
				Contents: deps.Repository,
				Logger:   deps.Logger,
			},
			Rollback: commands.RollbackVersionUseCase{
				Contents: deps.Repository,
				Versions: deps.Versions,
				Gate:     deps.Gate,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Get:      queries.GetContentUseCase{Contents: deps.Repository},
			List:     queries.ListContentUseCase{Contents: deps.Repository},
			Versions: queries.ListVersionsUseCase{Contents: deps.Repository, Versions: deps.Versions},
			Version:  queries.GetVersionUseCase{Versions: deps.Versions},
			Compare:  queries.CompareVersionsUseCase{Versions: deps.Versions},
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(seed []entities.ContentItem, audit memory.AuditSink, gate ports.EditGate, logger *slog.Logger) Module {
	store := memory.NewStore(seed, audit)
	module := NewModule(Dependencies{
		Repository: store,
		Versions:   store,
		Gate:       gate,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
