package backend

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteService implements DataService against a local SQLite database.
// Used for offline/kiosk deployments and tests.
type SQLiteService struct {
	sqlService
}

// NewSQLiteService opens (and if needed creates) the database at dbPath.
func NewSQLiteService(dbPath string, memoTTL time.Duration, logger zerolog.Logger) (*SQLiteService, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("sqlite data service initialized")
	return &SQLiteService{sqlService{
		db:   db,
		memo: newMemo(memoTTL),
		log:  logger,
	}}, nil
}

// createTables creates the storefront schema.
func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		image TEXT,
		is_visible INTEGER NOT NULL DEFAULT 1,
		parent_id TEXT
	);
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		images TEXT NOT NULL DEFAULT '[]',
		original_price REAL NOT NULL,
		discounted_price REAL,
		category_id TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		is_visible INTEGER NOT NULL DEFAULT 1,
		tags TEXT NOT NULL DEFAULT '[]'
	);
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		total_spent REAL,
		orders_count INTEGER
	);
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		order_number TEXT,
		customer_name TEXT NOT NULL,
		total_amount REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME
	);
	CREATE TABLE IF NOT EXISTS order_items (
		order_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
	`
	_, err := db.Exec(query)
	return err
}
