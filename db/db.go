package db

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// DB is the database struct. It is an explicitly owned handle: main
// opens it once and passes it down, tests open their own in-memory
// instance.
type DB struct {
	db *sql.DB
}

// Open opens the database at the given path and ensures the schema
// exists.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// The pool would otherwise hand out separate empty databases
		sqlDB.SetMaxOpenConns(1)
	} else {
		// Configure connection pool for concurrent access
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	var journalMode string
	err = sqlDB.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
	if err != nil {
		log.Printf("Warning: Failed to enable WAL mode: %v", err)
	} else {
		log.Printf("Database journal mode: %s", journalMode)
	}

	sqlDB.Exec("PRAGMA synchronous = NORMAL") // Reduces fsync calls
	sqlDB.Exec("PRAGMA cache_size = -64000")  // 64MB cache per connection
	sqlDB.Exec("PRAGMA temp_store = MEMORY")  // Store temp tables in RAM
	sqlDB.Exec("PRAGMA busy_timeout = 5000")  // Wait up to 5s for locks
	sqlDB.Exec("PRAGMA foreign_keys = ON")    // Enable FK constraints

	database := &DB{db: sqlDB}
	if err := database.CreateDB(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return database, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// wrapTransaction runs the given function within a transaction.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return err
	}
	for {
		err = f(tx)
		if err != nil {
			tx.Rollback()
			serr := &sqlite.Error{}
			if errors.As(err, &serr) && serr.Code() == sqlitelib.SQLITE_BUSY {
				tx, err = db.db.BeginTx(ctx, nil)
				if err != nil {
					return err
				}
				continue
			}
			return err
		}
		err = tx.Commit()
		if err != nil {
			log.Printf("error committing transaction: %s", err)
			return err
		}
		break
	}
	return nil
}

// IsUniqueViolation reports whether the error is a UNIQUE constraint
// failure. Toggle-style callers treat the losing side of a racing
// insert as already-in-desired-state.
func IsUniqueViolation(err error) bool {
	serr := &sqlite.Error{}
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// clampCount floors derived counters at zero on read; the write path
// never clamps (every +1 is paired with exactly one -1 per edge
// lifecycle, drift is corrected by recomputation from the edges).
func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
