package repository

import (
	"fmt"

	"fees-api/internal/config"

	"github.com/jmoiron/sqlx"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Repositories bundles the concrete implementations for the backend selected
// at startup. Handlers and services only ever see the interfaces.
type Repositories struct {
	Users UserRepository
	Posts PostRepository
	Fees  FeesRepository
}

// New picks the implementation set from cfg.DBType. Exactly one of mysqlDB
// and surrealDB is non-nil, matching the connection opened in main.
func New(cfg *config.Config, mysqlDB *sqlx.DB, surrealDB *surrealdb.DB) (*Repositories, error) {
	switch cfg.DBType {
	case config.BackendMySQL:
		return &Repositories{
			Users: NewMySQLUserRepository(mysqlDB),
			Posts: NewMySQLPostRepository(mysqlDB),
			Fees:  NewMySQLFeesRepository(mysqlDB),
		}, nil
	case config.BackendSurreal:
		return &Repositories{
			Users: NewSurrealUserRepository(surrealDB),
			Posts: NewSurrealPostRepository(surrealDB),
			Fees:  NewSurrealFeesRepository(surrealDB),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database kind: %s", cfg.DBType)
	}
}
