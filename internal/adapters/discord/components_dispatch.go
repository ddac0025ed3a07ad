package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()

	switch data.CustomID {

	case verifyButtonID:
		// Ojo: si hay que abrir el modal tiene que ser la primera respuesta,
		// así que en este caso NO se difiere.
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in component %s: %v", data.CustomID, rec)
				_ = SendEphemeral(s, ic, "❌ Ocurrió un error inesperado.")
			}
		}()

		uid := interactionUserID(ic)
		if uid == "" {
			return
		}
		if !r.clickLimiter.Allow(uid) {
			_ = SendEphemeral(s, ic, "⏳ Esperá un segundo…")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()

		already, err := r.verify.Start(ctx, ic.GuildID, uid)
		if err != nil {
			_ = SendEphemeral(s, ic, startErrMsg(err))
			return
		}
		if already {
			// corte terminal, distinto de "verificado recién"
			_ = SendEphemeral(s, ic, "", alreadyVerifiedEmbed())
			return
		}
		_ = RespondModal(s, ic, verifyModal())
	}
}

func startErrMsg(err error) string {
	switch {
	case errors.Is(err, service.ErrConfigMissing):
		return "⚠️ No hay config de verificación en este servidor. Avisale a un admin."
	case errors.Is(err, service.ErrRoleMissing):
		return "⚠️ El rol de verificación ya no existe. Avisale a un admin."
	default:
		return "⚠️ No pude arrancar la verificación: " + err.Error()
	}
}
