package discord

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"modstats/internal/access"
	"modstats/internal/config"
	"modstats/internal/ledger"
	"modstats/internal/moderation"
)

// Bot represents the Discord bot
type Bot struct {
	session    *discordgo.Session
	cfg        *config.Config
	store      *ledger.Store
	recorder   *ledger.Recorder
	mod        *moderation.Store
	muter      *moderation.Muter
	adminRoles access.RoleSet
	cooldown   *Cooldown
	startTime  time.Time
}

// New creates a new Discord bot
func New(cfg *config.Config, store *ledger.Store, recorder *ledger.Recorder, mod *moderation.Store, muter *moderation.Muter) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildPresences |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		session:    session,
		cfg:        cfg,
		store:      store,
		recorder:   recorder,
		mod:        mod,
		muter:      muter,
		adminRoles: access.NewRoleSet(cfg.AdminRoleIDs...),
		cooldown:   NewCooldown(5 * time.Minute),
		startTime:  time.Now(),
	}

	// Add event handlers
	session.AddHandler(bot.ready)
	session.AddHandler(bot.messageCreate)
	session.AddHandler(bot.voiceStateUpdate)
	session.AddHandler(bot.presenceUpdate)
	session.AddHandler(bot.interactionCreate)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	fmt.Println("✅ Bot is running...")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	return b.session.Close()
}

// ready registers the slash commands, announces a completed restart and
// re-arms unmute timers persisted before the last shutdown.
func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.cfg.GuildID, commandDefinitions()); err != nil {
		log.Printf("Error registering slash commands: %v", err)
	} else {
		log.Printf("Slash commands registered for guild %s", b.cfg.GuildID)
	}

	b.announceRestart(s)
	b.rearmMutes()
}

func (b *Bot) rearmMutes() {
	mutes, err := b.mod.PendingMutes()
	if err != nil {
		log.Printf("Error loading pending mutes: %v", err)
		return
	}
	for _, m := range mutes {
		userID := m.UserID
		b.muter.Schedule(userID, time.Until(m.ExpiresAt), func() { b.finishMute(userID) })
	}
	if len(mutes) > 0 {
		log.Printf("Re-armed %d pending unmute(s)", len(mutes))
	}
}

// isAdmin resolves the caller's role IDs once at the boundary and checks
// them against the configured admin role set.
func (b *Bot) isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && b.adminRoles.ContainsAny(i.Member.Roles)
}
