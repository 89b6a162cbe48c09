package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/iftar-registration/internal/models"
)

// MessageSender is the part of a discordgo session the notifier needs.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
	currency  string
}

func NewDiscordNotifier(session MessageSender, channelID, currency string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		currency:  currency,
	}
}

// NewDiscordSession opens a bot session for the given token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyRegistration(registration models.Registration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatRegistration(registration, n.currency))
	return err
}

func FormatRegistration(registration models.Registration, currency string) string {
	return fmt.Sprintf("🎟 **New Registration #%d**\n**Name:** %s (%s)\n**Department:** %s, level %d\n**People:** %d\n**Meals:** %s\n**Total:** %d %s",
		registration.TicketNumber,
		registration.Name,
		registration.StudentID,
		registration.Department,
		registration.Level,
		registration.TotalPeople,
		registration.MealSummary,
		registration.TotalPrice,
		currency,
	)
}
