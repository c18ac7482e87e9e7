package discord

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

const mutedRoleName = "Muted"

func (b *Bot) findMutedRole() (*discordgo.Role, error) {
	roles, err := b.session.GuildRoles(b.cfg.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == mutedRoleName {
			return r, nil
		}
	}
	return nil, nil
}

// ensureMutedRole finds or creates the Muted role. On creation the role is
// denied SendMessages in every text channel except the configured muted
// channel.
func (b *Bot) ensureMutedRole() (*discordgo.Role, error) {
	role, err := b.findMutedRole()
	if err != nil || role != nil {
		return role, err
	}

	role, err = b.session.GuildRoleCreate(b.cfg.GuildID, &discordgo.RoleParams{Name: mutedRoleName})
	if err != nil {
		return nil, fmt.Errorf("failed to create muted role: %w", err)
	}

	channels, err := b.session.GuildChannels(b.cfg.GuildID)
	if err != nil {
		log.Printf("Error listing channels for muted role: %v", err)
		return role, nil
	}
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		var allow, deny int64
		if ch.ID == b.cfg.MutedChannelID {
			allow = discordgo.PermissionSendMessages
		} else {
			deny = discordgo.PermissionSendMessages
		}
		if err := b.session.ChannelPermissionSet(ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
			log.Printf("Error setting muted role permissions on channel %s: %v", ch.ID, err)
		}
	}
	return role, nil
}

// applyMute assigns the Muted role, persists the expiry and arms the unmute
// timer.
func (b *Bot) applyMute(userID string, d time.Duration, reason string) error {
	role, err := b.ensureMutedRole()
	if err != nil {
		return err
	}
	if err := b.session.GuildMemberRoleAdd(b.cfg.GuildID, userID, role.ID); err != nil {
		return fmt.Errorf("failed to assign muted role: %w", err)
	}

	if err := b.mod.SetMute(userID, time.Now().Add(d), reason); err != nil {
		// the in-process timer still fires; only restart resumption is lost
		log.Printf("Error persisting mute: %v", err)
	}
	b.muter.Schedule(userID, d, func() { b.finishMute(userID) })
	return nil
}

// liftMute removes the role, cancels the pending timer and clears the
// persisted expiry. Returns false if the user had no mute in any of those.
func (b *Bot) liftMute(userID string) bool {
	muted := b.muter.Cancel(userID)

	if role, err := b.findMutedRole(); err == nil && role != nil {
		if member, err := b.session.GuildMember(b.cfg.GuildID, userID); err == nil {
			for _, id := range member.Roles {
				if id == role.ID {
					muted = true
					if err := b.session.GuildMemberRoleRemove(b.cfg.GuildID, userID, role.ID); err != nil {
						log.Printf("Error removing muted role: %v", err)
					}
					break
				}
			}
		}
	}

	if err := b.mod.ClearMute(userID); err != nil {
		log.Printf("Error clearing mute record: %v", err)
	}
	return muted
}

// finishMute is the timer callback for a mute expiry.
func (b *Bot) finishMute(userID string) {
	if role, err := b.findMutedRole(); err == nil && role != nil {
		if err := b.session.GuildMemberRoleRemove(b.cfg.GuildID, userID, role.ID); err != nil {
			log.Printf("Error removing muted role: %v", err)
		}
	}
	if err := b.mod.ClearMute(userID); err != nil {
		log.Printf("Error clearing mute record: %v", err)
	}
	if ch, err := b.session.UserChannelCreate(userID); err == nil {
		if _, err := b.session.ChannelMessageSend(ch.ID, "Your mute has been lifted. Please follow the rules."); err != nil {
			log.Printf("Error sending unmute notice: %v", err)
		}
	}
}
