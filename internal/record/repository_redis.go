package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb  *redis.Client
	keep int
}

func NewRedisRepo(rdb *redis.Client, keep int) Repo {
	return &redisRepo{rdb: rdb, keep: keep}
}

// key 约定：
//
//	list: ddz:rounds:{room} -> JSON(Round)，新的在表头，长度裁剪到 keep
func roundsKey(room string) string {
	return fmt.Sprintf("ddz:rounds:%s", room)
}

func (r *redisRepo) Save(ctx context.Context, rd Round) error {
	b, err := json.Marshal(rd)
	if err != nil {
		return err
	}
	p := r.rdb.TxPipeline()
	p.LPush(ctx, roundsKey(rd.Room), b)
	if r.keep > 0 {
		p.LTrim(ctx, roundsKey(rd.Room), 0, int64(r.keep-1))
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) List(ctx context.Context, room string, limit int) ([]Round, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := r.rdb.LRange(ctx, roundsKey(room), 0, stop).Result()
	if err == redis.Nil {
		return []Round{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]Round, 0, len(raw))
	for _, s := range raw {
		var rd Round
		if err := json.Unmarshal([]byte(s), &rd); err != nil {
			return nil, fmt.Errorf("decode round: %w", err)
		}
		out = append(out, rd)
	}
	return out, nil
}
