package storage

import (
	"context"
	"database/sql"

	pq "github.com/lib/pq"
)

type VoiceRepo struct{ db *sql.DB }

func NewVoiceRepo(db *sql.DB) *VoiceRepo { return &VoiceRepo{db: db} }

func (r *VoiceRepo) Get(ctx context.Context, guildID string) (GuildVoiceConfig, error) {
	var c GuildVoiceConfig
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, voice_channel_id, created_at, last_joined_at
  FROM guild_voice
 WHERE guild_id = $1
`, guildID).Scan(&c.GuildID, &c.VoiceChannelID, &c.CreatedAt, &c.LastJoinedAt)
	if err == sql.ErrNoRows {
		return GuildVoiceConfig{}, ErrNotFound
	}
	return c, err
}

func (r *VoiceRepo) Upsert(ctx context.Context, guildID, voiceChannelID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_voice (guild_id, voice_channel_id)
VALUES ($1,$2)
ON CONFLICT (guild_id) DO UPDATE SET
  voice_channel_id = EXCLUDED.voice_channel_id,
  last_joined_at   = now()
`, guildID, voiceChannelID)
	return err
}

func (r *VoiceRepo) Delete(ctx context.Context, guildID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM guild_voice WHERE guild_id = $1
`, guildID)
	return err
}

// DeleteMany: limpieza en lote de configs muertas (guild/canal que ya no existen).
func (r *VoiceRepo) DeleteMany(ctx context.Context, guildIDs []string) error {
	if len(guildIDs) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
DELETE FROM guild_voice WHERE guild_id = ANY($1)
`, pq.Array(guildIDs))
	return err
}

func (r *VoiceRepo) List(ctx context.Context) ([]GuildVoiceConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT guild_id, voice_channel_id, created_at, last_joined_at
  FROM guild_voice
 ORDER BY guild_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GuildVoiceConfig
	for rows.Next() {
		var c GuildVoiceConfig
		if err := rows.Scan(&c.GuildID, &c.VoiceChannelID, &c.CreatedAt, &c.LastJoinedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TouchJoined refresca last_joined_at (la usa el reconcile al reconectar;
// el janitor poda las filas que llevan semanas sin conexión).
func (r *VoiceRepo) TouchJoined(ctx context.Context, guildID string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE guild_voice SET last_joined_at = now() WHERE guild_id = $1
`, guildID)
	return err
}
