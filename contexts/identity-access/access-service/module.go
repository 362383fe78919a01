package access

import (
	"log/slog"

	httpadapter "vellum/contexts/identity-access/access-service/adapters/http"
	"vellum/contexts/identity-access/access-service/adapters/memory"
	"vellum/contexts/identity-access/access-service/application"
	"vellum/contexts/identity-access/access-service/domain/entities"
	"vellum/contexts/identity-access/access-service/ports"
)

// Module is the access-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Directory  ports.Directory
	Audit      ports.AuditRecorder
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repository,
		Directory: deps.Directory,
		Audit:     deps.Audit,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(seedUsers []entities.User, audit ports.AuditRecorder, logger *slog.Logger) Module {
	store := memory.NewStore(seedUsers)
	module := NewModule(Dependencies{
		Repository: store,
		Directory:  store,
		Audit:      audit,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
