package discord

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
)

type Config struct {
	BotKey    string
	ChannelId string
}

// embedSender is the part of a discordgo session the notifier needs
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

var colors = map[domain.Severity]int{
	domain.SeverityInfo:     0x3498db,
	domain.SeverityWarning:  0xf1c40f,
	domain.SeverityCritical: 0xe74c3c,
}

type notifier struct {
	channelId string
	session   embedSender
}

// New posts notifications as embeds to one channel. Without a bot key
// notifications are only logged.
func New(cfg Config) (domain.Notifier, error) {
	if cfg.BotKey == "" {
		return NewLogNotifier(), nil
	}
	session, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return &notifier{channelId: cfg.ChannelId, session: session}, nil
}

func (n *notifier) Notify(c ctx.Ctx, msg domain.Notification) error {
	if _, err := n.session.ChannelMessageSendEmbed(n.channelId, toEmbed(msg)); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"title": msg.Title,
		}).Error("ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func toEmbed(msg domain.Notification) *discordgo.MessageEmbed {
	names := make([]string, 0, len(msg.Fields))
	for k := range msg.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	fields := make([]*discordgo.MessageEmbedField, 0, len(names))
	for _, k := range names {
		fields = append(fields, &discordgo.MessageEmbedField{Name: k, Value: msg.Fields[k]})
	}
	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("[%s] %s", msg.Severity, msg.Title),
		Color:  colors[msg.Severity],
		Fields: fields,
	}
}

type logNotifier struct{}

func NewLogNotifier() domain.Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(c ctx.Ctx, msg domain.Notification) error {
	l := c.WithField("severity", msg.Severity)
	for k, v := range msg.Fields {
		l = l.WithField(k, v)
	}
	switch msg.Severity {
	case domain.SeverityCritical:
		l.Error(msg.Title)
	case domain.SeverityWarning:
		l.Warn(msg.Title)
	default:
		l.Info(msg.Title)
	}
	return nil
}
