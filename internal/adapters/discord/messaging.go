package discord

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
)

func SendEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, msg string, embeds ...*discordgo.MessageEmbed) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Embeds:  embeds,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("SendEphemeral error: %v", err)
	}
	return err
}

// Defer efímero (para trabajos >3s)
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("DeferEphemeral error: %v", err)
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	})
	if err != nil {
		// Fallback sólo si todavía no hay respuesta (webhook desconocido)
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == 10015 {
			_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
					Embeds:  embeds,
				},
			})
			return
		}
		log.Printf("ReplyEphemeral error: %v", err)
	}
}

// RespondModal abre el formulario. Tiene que ser la PRIMERA respuesta a la
// interacción: acá nunca se difiere antes.
func RespondModal(s *discordgo.Session, ic *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
	if err != nil {
		log.Printf("RespondModal error: %v", err)
	}
	return err
}
