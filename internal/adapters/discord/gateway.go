package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

// Gateway implementa los ports del service (GuildGateway + VoiceGateway)
// sobre la sesión de discordgo. Resolución vía State con fallback REST.
type Gateway struct{ s *discordgo.Session }

func NewGateway(s *discordgo.Session) *Gateway { return &Gateway{s: s} }

func (g *Gateway) guild(id string) *discordgo.Guild {
	if gu, err := g.s.State.Guild(id); err == nil && gu != nil {
		return gu
	}
	gu, err := g.s.Guild(id)
	if err != nil {
		return nil
	}
	return gu
}

func (g *Gateway) channel(id string) (*discordgo.Channel, error) {
	if ch, err := g.s.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}
	ch, err := g.s.Channel(id)
	if err != nil {
		return nil, err
	}
	_ = g.s.State.ChannelAdd(ch)
	return ch, nil
}

func isForbidden(err error) bool {
	var re *discordgo.RESTError
	return errors.As(err, &re) && re.Response != nil && re.Response.StatusCode == http.StatusForbidden
}

// ---------- GuildGateway ----------

func (g *Gateway) GuildName(guildID string) (string, bool) {
	if gu := g.guild(guildID); gu != nil {
		return gu.Name, true
	}
	return "", false
}

func (g *Gateway) TextChannelExists(guildID, channelID string) bool {
	ch, err := g.channel(channelID)
	if err != nil || ch.GuildID != guildID {
		return false
	}
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}

func (g *Gateway) RoleExists(guildID, roleID string) bool {
	if ro, err := g.s.State.Role(guildID, roleID); err == nil && ro != nil {
		return true
	}
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return false
	}
	for _, ro := range roles {
		if ro.ID == roleID {
			return true
		}
	}
	return false
}

func (g *Gateway) MemberHasRole(guildID, userID, roleID string) (bool, error) {
	m, err := g.s.State.Member(guildID, userID)
	if err != nil || m == nil {
		m, err = g.s.GuildMember(guildID, userID)
		if err != nil {
			return false, err
		}
	}
	for _, rid := range m.Roles {
		if rid == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (g *Gateway) GrantRole(guildID, userID, roleID string) error {
	if err := g.s.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		if isForbidden(err) {
			return service.ErrPermissionDenied
		}
		return err
	}
	return nil
}

func (g *Gateway) PublishPanel(channelID, roleID string) error {
	_, err := g.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{panelEmbed(roleID)},
		Components: []discordgo.MessageComponent{verifyPanelRow()},
	})
	if err != nil && isForbidden(err) {
		return service.ErrPermissionDenied
	}
	return err
}

func (g *Gateway) PublishAudit(channelID string, rec service.AuditRecord) error {
	_, err := g.s.ChannelMessageSendEmbed(channelID, auditEmbed(rec))
	return err
}

// ---------- VoiceGateway ----------

func (g *Gateway) GuildExists(guildID string) bool { return g.guild(guildID) != nil }

func (g *Gateway) VoiceChannelExists(guildID, channelID string) bool {
	ch, err := g.channel(channelID)
	if err != nil || ch.GuildID != guildID {
		return false
	}
	return ch.Type == discordgo.ChannelTypeGuildVoice || ch.Type == discordgo.ChannelTypeGuildStageVoice
}

func (g *Gateway) Current(guildID string) (string, bool) {
	g.s.RLock()
	vc := g.s.VoiceConnections[guildID]
	g.s.RUnlock()
	if vc == nil {
		return "", false
	}
	return vc.ChannelID, true
}

func (g *Gateway) Connect(guildID, channelID string) error {
	// mute=false, deaf=true: no reproducimos ni escuchamos nada
	_, err := g.s.ChannelVoiceJoin(guildID, channelID, false, true)
	return err
}

func (g *Gateway) Disconnect(guildID string) error {
	g.s.RLock()
	vc := g.s.VoiceConnections[guildID]
	g.s.RUnlock()
	if vc == nil {
		return nil
	}
	return vc.Disconnect()
}
