package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/app"
	"github.com/mattwilson20/ascrl-platform/internal/league"
)

type Bot struct {
	config *app.Config
	league *league.Service
	subs   *app.Subscriptions
	api    *tgbotapi.BotAPI
	admins map[int64]bool
}

func New(config *app.Config, svc *league.Service, subs *app.Subscriptions) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	admins := make(map[int64]bool)
	for _, id := range config.Bot.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		config: config,
		league: svc,
		subs:   subs,
		api:    api,
		admins: admins,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go b.handleMessage(update.Message)

		case <-sigChan:
			logger.Info.Println("Shutting down bot...")
			return nil
		}
	}
}

// SendTo delivers a plain message to a chat. The reminder scheduler uses it.
func (b *Bot) SendTo(chatID int64, text string) error {
	return b.sendMessage(chatID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendMonospace(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, "```\n"+text+"\n```")
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := b.api.Send(msg)
	return err
}
