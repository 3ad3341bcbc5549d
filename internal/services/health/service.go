package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	// DB is pinged when set; nil means the in-memory repositories are in
	// use and the check passes.
	DB *sql.DB
	// ObjectStoreReady and ProviderConfigured are wiring facts captured
	// at startup. They are reported, not probed.
	ObjectStoreReady   bool
	ProviderConfigured bool
}

// NewService constructs a new health service.
func NewService(db *sql.DB, storeReady, providerConfigured bool) *Service {
	return &Service{DB: db, ObjectStoreReady: storeReady, ProviderConfigured: providerConfigured}
}

// Status returns the health payload. The ok flag tracks only what can
// take the process down mid-request, which is the database.
func (s *Service) Status(ctx context.Context) map[string]bool {
	dbOK := true
	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		dbOK = s.DB.PingContext(pingCtx) == nil
	}

	return map[string]bool{
		"ok":          dbOK,
		"database":    dbOK,
		"objectStore": s.ObjectStoreReady,
		"provider":    s.ProviderConfigured,
	}
}
