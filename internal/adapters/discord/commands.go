package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Latido del bot",
	},
	{
		Name:        "setverify",
		Description: "Configura el canal del panel de verificación y el rol a entregar",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "Canal donde va el panel de verificación",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				Required:     true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Rol que recibe el usuario verificado",
				Required:    true,
			},
		},
	},
	{
		Name:        "sendverifypanel",
		Description: "Manda el panel de verificación al canal configurado",
	},
	{
		Name:        "join247",
		Description: "Conecta el bot a un canal de voz 24/7",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "voice_channel",
			Description:  "Canal de voz donde el bot se queda 24/7",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice},
			Required:     true,
		}},
	},
	{
		Name:        "leave247",
		Description: "Saca el bot del canal de voz 24/7 y borra la config",
	},
}
