// Package telegram checks a bot token against the Bot API.
package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrEmptyToken is returned when there is no token to probe.
var ErrEmptyToken = errors.New("bot token is empty")

// BotInfo is the subset of getMe the wizard reports.
type BotInfo struct {
	ID       int64
	UserName string
	Name     string
}

// Probe calls getMe with token. An empty endpoint uses the public Bot API.
func Probe(token, endpoint string) (BotInfo, error) {
	if token == "" {
		return BotInfo{}, ErrEmptyToken
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: 15 * time.Second}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return BotInfo{}, fmt.Errorf("getMe failed: %w", err)
	}
	return BotInfo{
		ID:       bot.Self.ID,
		UserName: bot.Self.UserName,
		Name:     bot.Self.FirstName,
	}, nil
}
