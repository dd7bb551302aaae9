package backend

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

// MySQLService implements DataService against the hosted MySQL database.
// The schema is managed by the hosting platform, not created here.
type MySQLService struct {
	sqlService
}

// NewMySQLService connects to MySQL using the given DSN.
func NewMySQLService(dsn string, memoTTL time.Duration, logger zerolog.Logger) (*MySQLService, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	logger.Info().Msg("mysql data service initialized")
	return &MySQLService{sqlService{
		db:   db,
		memo: newMemo(memoTTL),
		log:  logger,
	}}, nil
}
