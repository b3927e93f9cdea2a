package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mattwilson20/ascrl-platform/internal/models"
)

const subsKeyTpl = "reminders:%s" // reminders:${series}

// Subscriber is one chat that receives reminders for a series, with the
// audience tag mentioned in the message.
type Subscriber struct {
	ChatID int64
	Tag    string
}

// Subscriptions maps series to reminder audiences. Backed by redis hashes
// keyed per series, field chat ID, value audience tag. When redis is not
// configured it degrades to the single configured announce chat.
type Subscriptions struct {
	enabled      bool
	redis        *redis.Client
	fallbackChat int64
}

func NewSubscriptions(config *Config) (*Subscriptions, error) {
	if config.Redis.URL == "" {
		return &Subscriptions{
			enabled:      false,
			fallbackChat: config.Bot.AnnounceChatID,
		}, nil
	}

	opt, err := redis.ParseURL(config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Subscriptions{
		enabled:      true,
		redis:        client,
		fallbackChat: config.Bot.AnnounceChatID,
	}, nil
}

func (s *Subscriptions) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func (s *Subscriptions) Subscribe(ctx context.Context, series models.Series, chatID int64, tag string) error {
	if !s.enabled {
		return fmt.Errorf("subscriptions require redis, set redis.url in config")
	}
	key := fmt.Sprintf(subsKeyTpl, series)
	return s.redis.HSet(ctx, key, strconv.FormatInt(chatID, 10), tag).Err()
}

func (s *Subscriptions) Unsubscribe(ctx context.Context, series models.Series, chatID int64) error {
	if !s.enabled {
		return fmt.Errorf("subscriptions require redis, set redis.url in config")
	}
	key := fmt.Sprintf(subsKeyTpl, series)
	return s.redis.HDel(ctx, key, strconv.FormatInt(chatID, 10)).Err()
}

// ListSubscribers returns every chat subscribed to the series. Without redis
// the configured announce chat is the whole audience.
func (s *Subscriptions) ListSubscribers(ctx context.Context, series models.Series) ([]Subscriber, error) {
	if !s.enabled {
		if s.fallbackChat == 0 {
			return nil, nil
		}
		return []Subscriber{{
			ChatID: s.fallbackChat,
			Tag:    fmt.Sprintf("%s Series Fans", series),
		}}, nil
	}

	key := fmt.Sprintf(subsKeyTpl, series)
	fields, err := s.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers for %s: %w", series, err)
	}

	subs := make([]Subscriber, 0, len(fields))
	for field, tag := range fields {
		chatID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		subs = append(subs, Subscriber{ChatID: chatID, Tag: tag})
	}
	return subs, nil
}
