package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var _ Interface = &DiscordClient{}

type DiscordClient struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordClientFromConfig(config map[string]string) (*DiscordClient, error) {
	token := config["token"]
	if token == "" {
		return nil, errors.New("discord token is required")
	}
	channelID := config["channel_id"]
	if channelID == "" {
		return nil, errors.New("discord channel_id is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &DiscordClient{
		session:   session,
		channelID: channelID,
	}, nil
}

func (c *DiscordClient) Name() string { return "discord" }

func (c *DiscordClient) Notify(ctx context.Context, report Report) error {
	if _, err := c.session.ChannelMessageSend(c.channelID, report.String(), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

func (c *DiscordClient) Close() error {
	return c.session.Close()
}
