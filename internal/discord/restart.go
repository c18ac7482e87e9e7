package discord

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/bwmarrin/discordgo"
)

const restartInfoPath = "restart_info.json"

type restartInfo struct {
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
}

func writeRestartInfo(channelID, text string) error {
	data, err := json.Marshal(restartInfo{ChannelID: channelID, Text: text})
	if err != nil {
		return err
	}
	return os.WriteFile(restartInfoPath, data, 0644)
}

// announceRestart posts the persisted restart notice, if one exists, and
// removes the marker file.
func (b *Bot) announceRestart(s *discordgo.Session) {
	data, err := os.ReadFile(restartInfoPath)
	if err != nil {
		return
	}

	var info restartInfo
	if err := json.Unmarshal(data, &info); err == nil && info.ChannelID != "" {
		text := info.Text
		if text == "" {
			text = "Bot restarted."
		}
		if _, err := s.ChannelMessageSend(info.ChannelID, text); err != nil {
			log.Printf("Error announcing restart: %v", err)
		}
	}

	if err := os.Remove(restartInfoPath); err != nil {
		log.Printf("Error removing restart info: %v", err)
	}
}

// relaunch starts a fresh copy of the current binary with the same
// arguments; the caller closes the session and exits.
func relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start new process: %w", err)
	}
	return nil
}
