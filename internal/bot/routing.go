package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/domain/users"
	"github.com/Spok95/catalog-bot/internal/engine"
)

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	var ev engine.Event
	if msg.IsCommand() {
		if msg.Command() == engine.CmdStart {
			b.register(ctx, msg.From)
		}
		ev = engine.CommandEvent(msg.Command(), msg.CommandArguments())
	} else {
		ev = engine.TextEvent(msg.Text)
	}

	replies := b.engine.Handle(ctx, msg.From.ID, ev)
	b.deliver(msg.Chat.ID, 0, replies)
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// убираем «часики» на кнопке сразу
	if err := b.answerCallback(cb, "", false); err != nil {
		b.log.Warn("answer callback failed", "err", err)
	}
	if cb.From == nil || cb.Message == nil {
		return
	}

	replies := b.engine.Handle(ctx, cb.From.ID, engine.CallbackEvent(cb.Data))

	editID := 0
	if isTextMessage(cb.Message) {
		editID = cb.Message.MessageID
	}
	b.deliver(cb.Message.Chat.ID, editID, replies)
}

// deliver первый экран навигации редактирует нажатое сообщение, остальное отправляет новыми.
func (b *Bot) deliver(chatID int64, editID int, replies []engine.Reply) {
	for i, r := range replies {
		if i == 0 && editID != 0 {
			if edit, ok := editMessage(chatID, editID, r); ok {
				b.send(edit)
				continue
			}
		}
		for _, c := range messages(chatID, r) {
			b.send(c)
		}
	}
}

// register авто-админ: пользователь с id админ-чата получает роль admin.
func (b *Bot) register(ctx context.Context, from *tgbotapi.User) {
	role := users.RoleUser
	if from.ID == b.adminChat {
		role = users.RoleAdmin
	}
	u, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}, role)
	if err != nil {
		b.log.Error("register user failed", "user_id", from.ID, "err", err)
		return
	}
	b.log.Info("user registered", "user_id", u.TelegramID, "role", u.Role)
}
