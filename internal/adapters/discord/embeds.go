package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
)

const (
	colorInfo    = 0x00ffff
	colorSuccess = 0x00ff00
	colorError   = 0xff0000
	colorWarn    = 0xff9900
)

func panelEmbed(roleID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Panel de verificación",
		Description: fmt.Sprintf("**\n- Tocá el botón **Verificar** para obtener el rol\n- Rol de verificación: <@&%s>\n**", roleID),
		Color:       colorInfo,
	}
}

func verifyPanelRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "Verificar",
				CustomID: verifyButtonID,
				Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
			},
		},
	}
}

// verifyModal: mismos cinco campos de siempre; solo el último es opcional.
func verifyModal() *discordgo.InteractionResponseData {
	row := func(c discordgo.MessageComponent) discordgo.MessageComponent {
		return discordgo.ActionsRow{Components: []discordgo.MessageComponent{c}}
	}
	return &discordgo.InteractionResponseData{
		CustomID: verifyModalID,
		Title:    "Formulario de verificación",
		Components: []discordgo.MessageComponent{
			row(discordgo.TextInput{
				CustomID:    "full_name",
				Label:       "Nombre completo",
				Style:       discordgo.TextInputShort,
				Placeholder: "Ej: Juan Pérez",
				Required:    true,
				MaxLength:   100,
			}),
			row(discordgo.TextInput{
				CustomID:    "country_code",
				Label:       "Código de país",
				Style:       discordgo.TextInputShort,
				Placeholder: "Ej: +54, +977, +1",
				Required:    true,
				MaxLength:   5,
			}),
			row(discordgo.TextInput{
				CustomID:    "phone",
				Label:       "Teléfono",
				Style:       discordgo.TextInputShort,
				Placeholder: "Solo dígitos, sin código de país",
				Required:    true,
				MaxLength:   15,
			}),
			row(discordgo.TextInput{
				CustomID:    "email",
				Label:       "Email",
				Style:       discordgo.TextInputShort,
				Placeholder: "Ej: juan@example.com",
				Required:    true,
				MaxLength:   100,
			}),
			row(discordgo.TextInput{
				CustomID:    "additional_info",
				Label:       "Info adicional (opcional)",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "Lo que quieras agregar",
				Required:    false,
				MaxLength:   500,
			}),
		},
	}
}

func alreadyVerifiedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Ya estás verificado",
		Description: "**Ya tenés el rol de verificación en este servidor.**",
		Color:       colorError,
	}
}

func verifyFailEmbed(reason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Verificación fallida",
		Description: "**" + reason + "**",
		Color:       colorError,
	}
}

func verifySuccessEmbed(res service.GrantResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Verificación completa!",
		Description: fmt.Sprintf("**Felicitaciones!** Ya estás verificado y tenés el rol <@&%s>.\n\nBienvenido a **%s**!", res.RoleID, res.GuildName),
		Color:       colorSuccess,
	}
}

func auditEmbed(rec service.AuditRecord) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "📋 Nueva verificación",
		Description: "Un usuario completó la verificación.",
		Color:       colorInfo,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏠 Servidor", Value: fmt.Sprintf("%s\n`ID: %s`", rec.GuildName, rec.GuildID), Inline: true},
			{Name: "👤 Usuario", Value: fmt.Sprintf("<@%s>\n`ID: %s`", rec.UserID, rec.UserID), Inline: true},
			{Name: "🎭 Rol asignado", Value: fmt.Sprintf("<@&%s>", rec.RoleID), Inline: true},
			{Name: "📛 Nombre", Value: "`" + rec.FullName + "`", Inline: true},
			{Name: "🌍 Código de país", Value: "`" + rec.CountryCode + "`", Inline: true},
			{Name: "📞 Teléfono", Value: fmt.Sprintf("`%s %s`", rec.CountryCode, rec.Phone), Inline: true},
			{Name: "📧 Email", Value: "`" + rec.Email + "`", Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Verificación completada"},
	}
	if rec.AdditionalInfo != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "ℹ️ Info adicional",
			Value: "```" + rec.AdditionalInfo + "```",
		})
	}
	return e
}

func joinedEmbed(channelID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔊 Conexión 24/7",
		Description: fmt.Sprintf("✅ **Conectado a <#%s>!**\n\n- El bot se queda conectado 24/7\n- Se reconecta solo al reiniciar\n- Se reconecta solo si lo desconectan", channelID),
		Color:       colorSuccess,
	}
}

func leftEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔇 Canal de voz liberado",
		Description: "✅ **Desconectado y config 24/7 eliminada.**",
		Color:       colorWarn,
	}
}
