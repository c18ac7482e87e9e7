package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// messageCreate handles message creation events
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return
	}
	b.recorder.RecordMessage(m.Author.ID)
}

// voiceStateUpdate handles voice state updates
func (b *Bot) voiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if vs.GuildID == "" {
		return
	}
	if vs.Member != nil && vs.Member.User != nil && vs.Member.User.Bot {
		return
	}

	hadChannel := vs.BeforeUpdate != nil && vs.BeforeUpdate.ChannelID != ""
	hasChannel := vs.ChannelID != ""
	b.recorder.RecordVoiceState(vs.UserID, hadChannel, hasChannel, time.Now().UTC())
}

// presenceUpdate handles presence updates for game activity tracking
func (b *Bot) presenceUpdate(s *discordgo.Session, p *discordgo.PresenceUpdate) {
	if p.User == nil {
		return
	}

	var games []string
	for _, act := range p.Activities {
		if act.Type == discordgo.ActivityTypeGame && act.Name != "" {
			games = append(games, act.Name)
		}
	}
	b.recorder.RecordPresence(p.User.ID, games, time.Now().UTC())
}
