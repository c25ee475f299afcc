package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	id           TEXT PRIMARY KEY,
	room         TEXT NOT NULL,
	number       INTEGER NOT NULL,
	landlord     TEXT NOT NULL,
	winner       TEXT NOT NULL,
	landlord_won BOOLEAN NOT NULL,
	multiplier   INTEGER NOT NULL,
	deltas       JSONB NOT NULL,
	ended_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS rounds_room_ended_at ON rounds (room, ended_at DESC);
`

type pgRepo struct {
	db *sql.DB
}

// NewPostgresRepo creates the rounds table if needed.
func NewPostgresRepo(ctx context.Context, db *sql.DB) (Repo, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("migrate rounds: %w", err)
	}
	return &pgRepo{db: db}, nil
}

func (r *pgRepo) Save(ctx context.Context, rd Round) error {
	deltas, err := json.Marshal(rd.Deltas)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO rounds (id, room, number, landlord, winner, landlord_won, multiplier, deltas, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rd.ID, rd.Room, rd.Number, rd.Landlord, rd.Winner, rd.LandlordWon, rd.Multiplier, deltas, rd.EndedAt,
	)
	return err
}

func (r *pgRepo) List(ctx context.Context, room string, limit int) ([]Round, error) {
	q := `SELECT id, room, number, landlord, winner, landlord_won, multiplier, deltas, ended_at
	      FROM rounds WHERE room = $1 ORDER BY ended_at DESC`
	args := []any{room}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		var (
			rd     Round
			deltas []byte
		)
		if err := rows.Scan(&rd.ID, &rd.Room, &rd.Number, &rd.Landlord, &rd.Winner,
			&rd.LandlordWon, &rd.Multiplier, &deltas, &rd.EndedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(deltas, &rd.Deltas); err != nil {
			return nil, fmt.Errorf("decode deltas: %w", err)
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}
