package discord

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"modstats/pkg/utils"
)

const (
	autoMuteThreshold = 3
	autoMuteDuration  = time.Hour
	defaultMuteReason = "Not specified"
)

// handleWarn handles the /warn command
func (b *Bot) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := commandOptions(i)
	target := opts["member"].UserValue(s)
	reason := defaultMuteReason
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	count, err := b.mod.AddWarning(target.ID, callerID(i), reason)
	if err != nil {
		log.Printf("Error adding warning: %v", err)
		respond(s, i, "Failed to record the warning.", true)
		return
	}

	respond(s, i, fmt.Sprintf("%s has been warned. Reason: %s (warning %d)",
		utils.FormatUserMention(target.ID), reason, count), false)

	if count == autoMuteThreshold {
		if err := b.applyMute(target.ID, autoMuteDuration, "3 warnings"); err != nil {
			log.Printf("Error applying auto mute: %v", err)
			return
		}
		msg := fmt.Sprintf("%s has been muted for 1 hour after 3 warnings", utils.FormatUserMention(target.ID))
		if b.cfg.MutedChannelID != "" {
			msg += " and can only write in " + utils.FormatChannelMention(b.cfg.MutedChannelID)
		}
		followup(s, i, msg, false)
	}
}

// handleMywarns handles the /mywarns command
func (b *Bot) handleMywarns(s *discordgo.Session, i *discordgo.InteractionCreate) {
	warnings, err := b.mod.Warnings(callerID(i))
	if err != nil {
		log.Printf("Error getting warnings: %v", err)
		respond(s, i, "Failed to read your warnings.", true)
		return
	}
	if len(warnings) == 0 {
		respond(s, i, "You have no warnings!", true)
		return
	}

	var lines []string
	for n, w := range warnings {
		lines = append(lines, fmt.Sprintf("%d. Reason: %s", n+1, w.Reason))
	}
	respond(s, i, "Your warnings:\n"+strings.Join(lines, "\n"), true)
}

// handleClearwarns handles the /clearwarns command
func (b *Bot) handleClearwarns(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	target := commandOptions(i)["member"].UserValue(s)
	existed, err := b.mod.ClearWarnings(target.ID)
	if err != nil {
		log.Printf("Error clearing warnings: %v", err)
		respond(s, i, "Failed to clear warnings.", true)
		return
	}
	if !existed {
		respond(s, i, fmt.Sprintf("%s has no warnings.", utils.FormatUserMention(target.ID)), true)
		return
	}
	respond(s, i, fmt.Sprintf("All warnings for %s have been cleared.", utils.FormatUserMention(target.ID)), false)
}

// handleMute handles the /mute command
func (b *Bot) handleMute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := commandOptions(i)
	target := opts["member"].UserValue(s)
	minutes := 60
	if opt, ok := opts["minutes"]; ok && opt.IntValue() > 0 {
		minutes = int(opt.IntValue())
	}
	reason := defaultMuteReason
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	if err := b.applyMute(target.ID, time.Duration(minutes)*time.Minute, reason); err != nil {
		log.Printf("Error applying mute: %v", err)
		respond(s, i, "Failed to mute the member.", true)
		return
	}
	respond(s, i, fmt.Sprintf("%s has been muted for %d minutes. Reason: %s",
		utils.FormatUserMention(target.ID), minutes, reason), false)
}

// handleUnmute handles the /unmute command
func (b *Bot) handleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	target := commandOptions(i)["member"].UserValue(s)
	if !b.liftMute(target.ID) {
		respond(s, i, fmt.Sprintf("%s is not muted.", utils.FormatUserMention(target.ID)), true)
		return
	}
	respond(s, i, fmt.Sprintf("Mute lifted for %s.", utils.FormatUserMention(target.ID)), false)
}

// handleRestart handles the /restart command
func (b *Bot) handleRestart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	respond(s, i, "Restarting...", true)

	caller := callerID(i)
	if err := writeRestartInfo(i.ChannelID, fmt.Sprintf("Bot was restarted by %s.", utils.FormatUserMention(caller))); err != nil {
		log.Printf("Error writing restart info: %v", err)
	}
	if err := relaunch(); err != nil {
		log.Printf("Error relaunching: %v", err)
		followup(s, i, "Restart failed.", true)
		return
	}
	b.session.Close()
	os.Exit(0)
}

// handleStop handles the /stop command
func (b *Bot) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	respond(s, i, "Shutting down...", true)
	b.session.Close()
	os.Exit(0)
}
