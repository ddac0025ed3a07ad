package storage

import (
	"context"
	"database/sql"
)

type VerifyRepo struct{ db *sql.DB }

func NewVerifyRepo(db *sql.DB) *VerifyRepo { return &VerifyRepo{db: db} }

func (r *VerifyRepo) Get(ctx context.Context, guildID string) (GuildVerifyConfig, error) {
	var c GuildVerifyConfig
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, channel_id, role_id, created_at, updated_at
  FROM guild_verify
 WHERE guild_id = $1
`, guildID).Scan(&c.GuildID, &c.ChannelID, &c.RoleID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return GuildVerifyConfig{}, ErrNotFound
	}
	return c, err
}

func (r *VerifyRepo) Upsert(ctx context.Context, guildID, channelID, roleID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_verify (guild_id, channel_id, role_id)
VALUES ($1,$2,$3)
ON CONFLICT (guild_id) DO UPDATE SET
  channel_id = EXCLUDED.channel_id,
  role_id    = EXCLUDED.role_id,
  updated_at = now()
`, guildID, channelID, roleID)
	return err
}
