package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitPostgres(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	DB = db
	return nil
}

// Close 关闭已打开的连接
func Close() error {
	var errs []error
	if Rdb != nil {
		errs = append(errs, Rdb.Close())
		Rdb = nil
	}
	if DB != nil {
		errs = append(errs, DB.Close())
		DB = nil
	}
	return errors.Join(errs...)
}
