package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

func (r *Router) handleModalSubmit(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ModalSubmitData()
	if data.CustomID != verifyModalID {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in modal %s: %v", data.CustomID, rec)
			ReplyEphemeral(s, ic, "❌ Ocurrió un error inesperado.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	uid := interactionUserID(ic)
	if uid == "" {
		return
	}

	sub := service.Submission{
		FullName:       modalValue(data, "full_name"),
		CountryCode:    modalValue(data, "country_code"),
		Phone:          modalValue(data, "phone"),
		Email:          modalValue(data, "email"),
		AdditionalInfo: modalValue(data, "additional_info"),
	}

	res, err := r.verify.Submit(ctx, ic.GuildID, uid, sub)
	if err != nil {
		ReplyEphemeral(s, ic, "", verifyFailEmbed(submitErrMsg(err)))
		return
	}
	ReplyEphemeral(s, ic, "", verifySuccessEmbed(res))
}

// Se reporta SOLO el primer error de validación, sin acumular.
func submitErrMsg(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidPhone):
		return "Teléfono inválido! Tienen que ser 8 a 15 dígitos."
	case errors.Is(err, service.ErrInvalidEmail):
		return "Email inválido! Poné una dirección real."
	case errors.Is(err, service.ErrInvalidCountryCode):
		return "Código de país inválido! Tiene que ser + seguido de dígitos."
	case errors.Is(err, service.ErrPermissionDenied):
		return "No tengo permisos para asignar el rol. Avisale a un admin."
	case errors.Is(err, service.ErrConfigMissing), errors.Is(err, service.ErrRoleMissing):
		return "La config de verificación ya no está. Avisale a un admin."
	default:
		return "Ocurrió un error: " + err.Error()
	}
}
