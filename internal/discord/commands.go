package discord

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"modstats/internal/ledger"
	"modstats/internal/system"
	"modstats/pkg/utils"
)

const leaderboardSize = 10

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "ping", Description: "Bot latency"},
		{Name: "help", Description: "List available commands"},
		{
			Name:        "userinfo",
			Description: "Show a member's activity info",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Member to look up (defaults to you)"},
			},
		},
		{Name: "myrank", Description: "Your place in the message leaderboard"},
		{Name: "top", Description: "Top users by message count"},
		{Name: "voicetop", Description: "Top users by voice channel time"},
		{Name: "activity", Description: "Weekly activity summary (admins only)"},
		{
			Name:        "say",
			Description: "Send a message as the bot (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Text to send", Required: true},
			},
		},
		{
			Name:        "clear",
			Description: "Delete recent messages in this channel (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "How many messages to delete (default 5)"},
			},
		},
		{
			Name:        "warn",
			Description: "Warn a member (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Member to warn", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the warning"},
			},
		},
		{Name: "mywarns", Description: "Show your warnings"},
		{
			Name:        "clearwarns",
			Description: "Clear a member's warnings (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Member to clear", Required: true},
			},
		},
		{
			Name:        "mute",
			Description: "Mute a member for a number of minutes (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Member to mute", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Mute duration in minutes (default 60)"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the mute"},
			},
		},
		{
			Name:        "unmute",
			Description: "Lift a member's mute (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Member to unmute", Required: true},
			},
		},
		{Name: "status", Description: "Bot resource usage (admins only)"},
		{Name: "restart", Description: "Restart the bot (admins only)"},
		{Name: "stop", Description: "Shut the bot down (admins only)"},
	}
}

// interactionCreate dispatches slash commands
func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ping":
		b.handlePing(s, i)
	case "help":
		b.handleHelp(s, i)
	case "userinfo":
		b.handleUserinfo(s, i)
	case "myrank":
		b.handleMyrank(s, i)
	case "top":
		b.handleTop(s, i)
	case "voicetop":
		b.handleVoicetop(s, i)
	case "activity":
		b.handleActivity(s, i)
	case "say":
		b.handleSay(s, i)
	case "clear":
		b.handleClear(s, i)
	case "warn":
		b.handleWarn(s, i)
	case "mywarns":
		b.handleMywarns(s, i)
	case "clearwarns":
		b.handleClearwarns(s, i)
	case "mute":
		b.handleMute(s, i)
	case "unmute":
		b.handleUnmute(s, i)
	case "status":
		b.handleStatus(s, i)
	case "restart":
		b.handleRestart(s, i)
	case "stop":
		b.handleStop(s, i)
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: flags},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content, Flags: flags}); err != nil {
		log.Printf("Error sending followup: %v", err)
	}
}

// requireAdmin denies the interaction unless the caller holds an admin role.
func (b *Bot) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if b.isAdmin(i) {
		return true
	}
	respond(s, i, "You do not have permission to use this command.", true)
	return false
}

func callerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// handlePing handles the /ping command
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, fmt.Sprintf("Pong! %dms", s.HeartbeatLatency().Milliseconds()), false)
}

// handleHelp handles the /help command
func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	lines := []string{
		"/ping - Bot latency",
		"/userinfo - Show a member's activity info",
		"/myrank - Your place in the message leaderboard",
		"/top - Top users by message count",
		"/voicetop - Top users by voice channel time",
		"/mywarns - Show your warnings",
		"/activity - Weekly activity summary (admins)",
		"/say - Send a message as the bot (admins)",
		"/clear - Delete recent messages (admins)",
		"/warn - Warn a member (admins)",
		"/clearwarns - Clear a member's warnings (admins)",
		"/mute - Mute a member (admins)",
		"/unmute - Lift a mute (admins)",
		"/status - Bot resource usage (admins)",
		"/restart - Restart the bot (admins)",
		"/stop - Shut the bot down (admins)",
		"/help - Show this message",
	}
	respond(s, i, "Available commands:\n"+strings.Join(lines, "\n"), true)
}

// handleUserinfo handles the /userinfo command
func (b *Bot) handleUserinfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var target *discordgo.User
	if opt, ok := commandOptions(i)["member"]; ok {
		target = opt.UserValue(s)
	} else if i.Member != nil {
		target = i.Member.User
	}
	if target == nil {
		respond(s, i, "Could not resolve that member.", true)
		return
	}

	joined := "N/A"
	if member, err := s.GuildMember(b.cfg.GuildID, target.ID); err == nil && !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.Format("2006-01-02 15:04:05")
	}

	var messages int
	var voiceSeconds int64
	b.store.View(func(l *ledger.Ledger) {
		if rec, ok := l.Get(target.ID); ok {
			messages = rec.Messages
			voiceSeconds = rec.VoiceSeconds
		}
	})

	respond(s, i, fmt.Sprintf("User: %s\nJoined: %s\nMessages: %d\nVoice hours: %g",
		target.Username, joined, messages, ledger.RoundHours(voiceSeconds)), false)
}

// handleMyrank handles the /myrank command
func (b *Bot) handleMyrank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	uid := callerID(i)

	var rank, messages int
	var ranked bool
	b.store.View(func(l *ledger.Ledger) {
		rank, ranked = ledger.RankOf(l, uid)
		if rec, ok := l.Get(uid); ok {
			messages = rec.Messages
		}
	})

	if !ranked {
		respond(s, i, "You are not in the message leaderboard yet.", true)
		return
	}
	respond(s, i, fmt.Sprintf("Your leaderboard position: %d\nMessages: %d", rank, messages), true)
}

// handleTop handles the /top command
func (b *Bot) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) && !b.cooldown.Allow("top:"+callerID(i), time.Now()) {
		respond(s, i, "This command can be used once every 5 minutes.", true)
		return
	}

	var rows []ledger.RankedUser
	b.store.View(func(l *ledger.Ledger) {
		rows = ledger.TopByMessages(l, leaderboardSize)
	})

	if len(rows) == 0 {
		respond(s, i, "No data yet.", false)
		return
	}
	var lines []string
	for n, row := range rows {
		lines = append(lines, utils.FormatLeaderboardEntry(n+1,
			utils.FormatUserMention(row.UserID), fmt.Sprintf("%d messages", row.Value)))
	}
	respond(s, i, "Top by messages:\n"+strings.Join(lines, "\n"), false)
}

// handleVoicetop handles the /voicetop command
func (b *Bot) handleVoicetop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) && !b.cooldown.Allow("voicetop:"+callerID(i), time.Now()) {
		respond(s, i, "This command can be used once every 5 minutes.", true)
		return
	}

	var rows []ledger.RankedUser
	b.store.View(func(l *ledger.Ledger) {
		rows = ledger.TopByVoice(l, leaderboardSize)
	})

	if len(rows) == 0 {
		respond(s, i, "No data yet.", false)
		return
	}
	var lines []string
	for n, row := range rows {
		lines = append(lines, utils.FormatLeaderboardEntry(n+1,
			utils.FormatUserMention(row.UserID), fmt.Sprintf("%g h", ledger.RoundHours(row.Value))))
	}
	respond(s, i, "Top by voice time:\n"+strings.Join(lines, "\n"), false)
}

// handleActivity handles the /activity command
func (b *Bot) handleActivity(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	now := time.Now().UTC()
	var lines []string
	b.store.View(func(l *ledger.Ledger) {
		summaries := ledger.WeeklySummary(l, now)
		for _, uid := range l.UserIDs() {
			sum := summaries[uid]
			games := "-"
			if len(sum.GameCounts) > 0 {
				var parts []string
				for name, count := range sum.GameCounts {
					parts = append(parts, fmt.Sprintf("%s: %d", name, count))
				}
				games = strings.Join(parts, ", ")
			}
			lines = append(lines, fmt.Sprintf("%s: messages: %d, voice hours: %g, games: %s",
				utils.FormatUserMention(uid), sum.Messages, sum.VoiceHours, games))
		}
	})

	if len(lines) == 0 {
		lines = []string{"No data for this week."}
	}
	respond(s, i, utils.TruncateString("Weekly activity:\n"+strings.Join(lines, "\n"), 2000), true)
}

// handleSay handles the /say command
func (b *Bot) handleSay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	text := commandOptions(i)["text"].StringValue()
	respond(s, i, "Message sent.", true)
	if _, err := s.ChannelMessageSend(i.ChannelID, text); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// handleClear handles the /clear command
func (b *Bot) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	amount := 5
	if opt, ok := commandOptions(i)["amount"]; ok {
		amount = int(opt.IntValue())
	}
	if amount < 1 {
		amount = 1
	}
	if amount > 100 {
		// bulk delete API ceiling
		amount = 100
	}

	respond(s, i, fmt.Sprintf("Deleting %d messages...", amount), true)

	messages, err := s.ChannelMessages(i.ChannelID, amount, "", "", "")
	if err != nil {
		log.Printf("Error fetching messages: %v", err)
		followup(s, i, "Failed to fetch messages.", true)
		return
	}
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		log.Printf("Error deleting messages: %v", err)
		followup(s, i, "Failed to delete messages.", true)
		return
	}
	followup(s, i, fmt.Sprintf("Deleted %d messages.", len(ids)), true)
}

// handleStatus handles the /status command
func (b *Bot) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	cpuUsage, err := system.CPUUsage()
	if err != nil {
		log.Printf("Error reading CPU usage: %v", err)
	}
	memUsage, err := system.MemoryUsage()
	if err != nil {
		log.Printf("Error reading memory usage: %v", err)
	}
	uptime := utils.FormatDuration(int64(time.Since(b.startTime).Seconds()))

	respond(s, i, fmt.Sprintf("CPU: %.1f%%\nMemory: %.1f%%\nUptime: %s", cpuUsage, memUsage, uptime), true)
}
