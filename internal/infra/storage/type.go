package storage

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Config del panel de verificación. Una fila por guild; la pisa /setverify.
type GuildVerifyConfig struct {
	GuildID   string
	ChannelID string
	RoleID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Canal de voz 24/7. Máximo una fila por guild.
type GuildVoiceConfig struct {
	GuildID        string
	VoiceChannelID string
	CreatedAt      time.Time
	LastJoinedAt   time.Time
}
