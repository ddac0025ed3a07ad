package service

import (
	"context"

	"github.com/jose-valero/xcg-verify-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.Store (con fallback a memoria).
type ConfigStore interface {
	GetVerify(ctx context.Context, guildID string) (storage.GuildVerifyConfig, error)
	SetVerify(ctx context.Context, guildID, channelID, roleID string) error

	GetVoice(ctx context.Context, guildID string) (storage.GuildVoiceConfig, error)
	SetVoice(ctx context.Context, guildID, voiceChannelID string) error
	DeleteVoice(ctx context.Context, guildID string) error
	DeleteVoiceBatch(ctx context.Context, guildIDs []string) error
	ListVoice(ctx context.Context) ([]storage.GuildVoiceConfig, error)
	TouchVoiceJoined(ctx context.Context, guildID string) error
}

// Lo implementa internal/adapters/discord.Gateway
type GuildGateway interface {
	GuildName(guildID string) (string, bool)
	TextChannelExists(guildID, channelID string) bool
	RoleExists(guildID, roleID string) bool
	MemberHasRole(guildID, userID, roleID string) (bool, error)
	// GrantRole devuelve ErrPermissionDenied si el bot no alcanza el rol.
	GrantRole(guildID, userID, roleID string) error
	// PublishPanel manda el panel persistente; ErrPermissionDenied si el bot
	// no puede escribir en el canal.
	PublishPanel(channelID, roleID string) error
	PublishAudit(channelID string, rec AuditRecord) error
}

// Lo implementa internal/adapters/discord.Gateway (lado voz).
type VoiceGateway interface {
	GuildExists(guildID string) bool
	VoiceChannelExists(guildID, channelID string) bool
	// Current: canal de la conexión de voz viva en ese guild, si hay.
	Current(guildID string) (channelID string, ok bool)
	Connect(guildID, channelID string) error
	Disconnect(guildID string) error
}
