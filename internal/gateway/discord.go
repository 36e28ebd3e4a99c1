package gateway

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

type DiscordGateway struct {
	Session *discordgo.Session
	Planner Planner

	done chan struct{}
}

func NewDiscordGateway(token string, planner Planner) (*DiscordGateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	dg := &DiscordGateway{
		Session: session,
		Planner: planner,
		done:    make(chan struct{}),
	}
	session.AddHandler(dg.onMessage)
	return dg, nil
}

func (dg *DiscordGateway) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || m.Content == "" {
		return
	}

	log.Printf("[%s] %s", m.Author.Username, m.Content)

	response, err := dg.Planner.GenerateText(context.Background(), m.Content)
	if err != nil {
		log.Printf("Error planning: %v", err)
		response = fmt.Sprintf("I couldn't plan that: %v", err)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, response); err != nil {
		log.Printf("Error sending discord message: %v", err)
	}
}

func (dg *DiscordGateway) Start() error {
	if err := dg.Session.Open(); err != nil {
		return err
	}
	if dg.Session.State != nil && dg.Session.State.User != nil {
		log.Printf("Discord gateway connected as %s", dg.Session.State.User.Username)
	}

	// Block until Stop, to match the Messenger contract.
	<-dg.done
	return nil
}

func (dg *DiscordGateway) Send(chatID string, text string) error {
	_, err := dg.Session.ChannelMessageSend(chatID, text)
	return err
}

func (dg *DiscordGateway) Stop() error {
	close(dg.done)
	return dg.Session.Close()
}
