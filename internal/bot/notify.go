package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/users"
)

// InquiryCommitted шлёт новый запрос в админ-чат и всем админам.
// Отправка идёт в фоне, чтобы не держать очередь пользователя; Run дожидается её при остановке.
func (b *Bot) InquiryCommitted(ctx context.Context, in inquiries.Inquiry, item *dialog.ItemRef) {
	b.notices.Add(1)
	go func() {
		defer b.notices.Done()
		b.notify(context.WithoutCancel(ctx), in, item)
	}()
}

// waitNotices ждёт уведомления, начатые до остановки.
func (b *Bot) waitNotices() {
	b.notices.Wait()
}

func (b *Bot) notifyAdmins(ctx context.Context, in inquiries.Inquiry, item *dialog.ItemRef) {
	text := inquiryText(in, item, b.senderName(ctx, in.UserID))

	// не шлём одному и тому же chat_id дважды
	sent := map[int64]struct{}{}
	sendOnce := func(chatID int64) {
		if chatID == 0 {
			return
		}
		if _, ok := sent[chatID]; ok {
			return
		}
		b.send(tgbotapi.NewMessage(chatID, text))
		sent[chatID] = struct{}{}
	}

	// 1) админ-чат (может быть личка или группа)
	sendOnce(b.adminChat)

	// 2) пользователи с ролью admin
	list, err := b.users.ListByRole(ctx, users.RoleAdmin)
	if err != nil {
		b.log.Error("list admins failed", "inquiry_id", in.ID, "err", err)
		return
	}
	for _, u := range list {
		sendOnce(u.TelegramID)
	}
}

func (b *Bot) senderName(ctx context.Context, userID int64) string {
	u, err := b.users.GetByTelegramID(ctx, userID)
	if err != nil {
		b.log.Warn("load inquiry sender failed", "user_id", userID, "err", err)
	}
	if u == nil {
		return users.Telegram{ID: userID}.DisplayName()
	}
	return u.Profile().DisplayName()
}

func inquiryText(in inquiries.Inquiry, item *dialog.ItemRef, sender string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🆕 New inquiry #%d\n", in.ID)
	if item != nil {
		fmt.Fprintf(&sb, "Item: %s (%s #%d)\n", item.Name, item.Type, item.ID)
	} else {
		sb.WriteString("Item: general inquiry\n")
	}
	fmt.Fprintf(&sb, "Name: %s\nPhone: %s\nFrom: %s (tg://user?id=%d)\n\n%s",
		in.Name, in.Phone, sender, in.UserID, in.Description)
	return sb.String()
}
