package record

import (
	"context"
	"errors"
	"fmt"

	"DouDizhu/internal/storage"
)

// Repo 定义对局记录的存取
type Repo interface {
	// Save 保存一局记录
	Save(ctx context.Context, r Round) error
	// List 返回房间最近的记录，新的在前
	List(ctx context.Context, room string, limit int) ([]Round, error)
}

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open picks the repository for driver. redis and postgres expect the
// matching storage.Init* call to have succeeded first.
func Open(ctx context.Context, driver string, keep int) (Repo, error) {
	switch driver {
	case "", "memory":
		return NewMemoryRepo(keep), nil
	case "redis":
		if storage.Rdb == nil {
			return nil, fmt.Errorf("redis repo: %w", storage.ErrNotInitialised)
		}
		return NewRedisRepo(storage.Rdb, keep), nil
	case "postgres":
		if storage.DB == nil {
			return nil, fmt.Errorf("postgres repo: %w", storage.ErrNotInitialised)
		}
		return NewPostgresRepo(ctx, storage.DB)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
