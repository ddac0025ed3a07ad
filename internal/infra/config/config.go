package config

import (
	"log"
	"os"
)

type Config struct {
	DatabaseURL  string // opcional: vacío => arrancamos en modo solo-memoria
	DiscordToken string
	DiscordGuild string // opcional: registra los comandos también en ese guild (sync rápido)

	// Canal global donde caen las submissions de verificación.
	// Opcional: vacío => no se publica el audit.
	SubmissionChannelID string
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}

	return Config{
		DatabaseURL:         get("DATABASE_URL", false),
		DiscordToken:        get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:        get("DISCORD_GUILD_ID", false),
		SubmissionChannelID: get("SUBMISSION_CHANNEL_ID", false),
	}
}
