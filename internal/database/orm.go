package database

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenORM opens a GORM handle that borrows connections from pool.
func OpenORM(pool *pgxpool.Pool, logger gormlogger.Interface) (*gorm.DB, error) {
	return OpenORMWithConn(stdlib.OpenDBFromPool(pool), logger)
}

// OpenORMWithConn opens a GORM handle over an existing *sql.DB.
//
// Default transactions are skipped: every repository call is a single
// statement, so wrapping it in BEGIN/COMMIT only costs round trips.
func OpenORMWithConn(conn *sql.DB, logger gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}
