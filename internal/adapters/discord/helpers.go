package discord

import "github.com/bwmarrin/discordgo"

func optChannelID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionChannel {
			if v, ok := o.Value.(string); ok {
				return v, true
			}
		}
	}
	return "", false
}

func optRoleID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionRole {
			if v, ok := o.Value.(string); ok {
				return v, true
			}
		}
	}
	return "", false
}

// modalValue saca el valor de un TextInput por custom_id.
func modalValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if ti, ok := inner.(*discordgo.TextInput); ok && ti.CustomID == id {
				return ti.Value
			}
		}
	}
	return ""
}

func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}
