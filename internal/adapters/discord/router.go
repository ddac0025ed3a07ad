package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

// IDs estables de los componentes: el botón del panel tiene que seguir
// respondiendo después de un reinicio, sin re-mandar el mensaje.
const (
	verifyButtonID = "verify_open"
	verifyModalID  = "verify_form"
)

type Router struct {
	s       *discordgo.Session
	guildID string // opcional: registro extra de comandos ahí (sync rápido)

	verify *service.VerifyService
	voice  *service.VoiceService

	clickLimiter *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	verify *service.VerifyService,
	voice *service.VoiceService,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		verify:       verify,
		voice:        voice,
		clickLimiter: newUserLimiter(1500 * time.Millisecond),
	}
}

// Register publica los comandos global y, si hay guild configurado, también
// ahí (el registro global tarda en propagar).
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return err
		}
		if r.guildID != "" {
			if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		case discordgo.InteractionModalSubmit:
			r.handleModalSubmit(s, ic)
		}
	})
	r.s.AddHandler(r.onVoiceStateUpdate)
}

// Solo nos importan las caídas de la PROPIA conexión del bot: había canal
// antes y ahora no. Los movimientos de otros miembros se ignoran.
func (r *Router) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if s.State.User == nil || vs.UserID != s.State.User.ID {
		return
	}
	if vs.BeforeUpdate == nil || vs.BeforeUpdate.ChannelID == "" || vs.ChannelID != "" {
		return
	}
	go r.voice.HandleDisconnect(context.Background(), vs.GuildID, vs.BeforeUpdate.ChannelID)
}
