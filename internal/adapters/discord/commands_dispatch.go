// Dispatch de InteractionApplicationCommand: acá solo se maneja la
// interacción y se delega a los services.
package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	log.Printf("cmd: /%s by=%s guild=%s", cmd.Name, interactionUserID(ic), ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Ocurrió un error inesperado procesando el comando.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch cmd.Name {

	case "ping":
		ReplyEphemeral(s, ic, "🏓 Pong!")

	//--> guarda canal + rol del panel
	case "setverify":
		channelID, ok1 := optChannelID(ic, "channel")
		roleID, ok2 := optRoleID(ic, "role")
		if !ok1 || !ok2 {
			ReplyEphemeral(s, ic, "⚠️ Faltan opciones: channel y role.")
			return
		}
		if err := r.verify.Configure(ctx, ic.GuildID, channelID, roleID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar la config: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "✅ Listo!\n**Canal:** <#"+channelID+">\n**Rol:** <@&"+roleID+">\n\nUsá `/sendverifypanel` para mandar el panel.")

	//--> publica el panel persistente
	case "sendverifypanel":
		stop := step("cmd.sendverifypanel")
		defer stop()
		if err := r.verify.PostPanel(ctx, ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, panelErrMsg(err))
			return
		}
		ReplyEphemeral(s, ic, "✅ Panel enviado!")

	//--> voz 24/7
	case "join247":
		if !r.requireManageChannels(s, ic) {
			return
		}
		channelID, ok := optChannelID(ic, "voice_channel")
		if !ok {
			ReplyEphemeral(s, ic, "⚠️ Falta el canal de voz.")
			return
		}
		if err := r.voice.Join(ctx, ic.GuildID, channelID); err != nil {
			if errors.Is(err, service.ErrJoinFailed) {
				ReplyEphemeral(s, ic, "❌ No pude entrar al canal de voz. Revisá mis permisos ahí.")
				return
			}
			ReplyEphemeral(s, ic, "⚠️ Conecté pero no pude guardar la config: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "", joinedEmbed(channelID))

	case "leave247":
		if !r.requireManageChannels(s, ic) {
			return
		}
		if err := r.voice.Leave(ctx, ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude borrar la config: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "", leftEmbed())
	}
}

func panelErrMsg(err error) string {
	switch {
	case errors.Is(err, service.ErrConfigMissing):
		return "⚠️ No hay config de verificación. Usá `/setverify` primero."
	case errors.Is(err, service.ErrResolutionFailed):
		return "⚠️ El canal o el rol configurado ya no existen. Revisá los IDs con `/setverify`."
	case errors.Is(err, service.ErrPermissionDenied):
		return "❌ No tengo permisos para escribir en ese canal."
	default:
		return "⚠️ No pude mandar el panel: " + err.Error()
	}
}
