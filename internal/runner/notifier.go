package runner

import (
	"context"
	"fmt"
	"strings"

	"release-tagger/pkg/telegram"
)

type telegramNotifier struct {
	bot    *telegram.Bot
	chatID int64
}

// NewTelegramNotifier sends failure reports to one Telegram chat.
func NewTelegramNotifier(bot *telegram.Bot, chatID int64) Notifier {
	return &telegramNotifier{bot: bot, chatID: chatID}
}

func (n *telegramNotifier) Notify(ctx context.Context, text string) error {
	return n.bot.SendMessage(ctx, n.chatID, text)
}

// FormatFailure renders the operator report of a failed run. Task failures in
// runErr carry the tag set each task should have received.
func FormatFailure(summary Summary, runErr error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "release-tagger run %s failed\n", summary.RunID)
	fmt.Fprintf(&b, "entries: %d, actions: %d, updated: %d\n",
		summary.Entries, len(summary.Actions), len(summary.Report.Updated))
	fmt.Fprintf(&b, "\n%v", runErr)
	return telegram.Tail(b.String(), telegram.MaxMessageLength)
}
