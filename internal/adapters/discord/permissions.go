package discord

import "github.com/bwmarrin/discordgo"

// requireManageChannels: gate de /join247 y /leave247. Las interacciones ya
// traen los permisos computados del member; el owner pasa siempre.
func (r *Router) requireManageChannels(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if ic.Member != nil {
		if ic.Member.Permissions&(discordgo.PermissionManageChannels|discordgo.PermissionAdministrator) != 0 {
			return true
		}
		if g, _ := s.State.Guild(ic.GuildID); g != nil && ic.Member.User != nil && ic.Member.User.ID == g.OwnerID {
			return true
		}
	}
	ReplyEphemeral(s, ic, "🔒 Necesitás el permiso **Gestionar canales** para esto.")
	return false
}
