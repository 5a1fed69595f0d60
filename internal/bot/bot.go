// Package bot: транспорт Telegram: long polling, отрисовка ответов движка,
// регистрация пользователей и уведомления админам.
package bot

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/users"
	"github.com/Spok95/catalog-bot/internal/engine"
)

// Очередь одного воркера
const queueSize = 64

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	engine    *engine.Engine
	users     *users.Repo
	adminChat int64
	workers   int

	// notify рассылка о новом запросе, в тестах подменяется
	notify  func(ctx context.Context, in inquiries.Inquiry, item *dialog.ItemRef)
	notices sync.WaitGroup
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, eng *engine.Engine,
	usersRepo *users.Repo, adminChatID int64, workers int) *Bot {

	if workers <= 0 {
		workers = 1
	}
	b := &Bot{
		api: api, log: log, engine: eng, users: usersRepo,
		adminChat: adminChatID, workers: workers,
	}
	b.notify = b.notifyAdmins
	return b
}

// Run читает апдейты до отмены ctx. Апдейты одного пользователя всегда
// попадают в один и тот же воркер и обрабатываются по порядку.
func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	queues := make([]chan tgbotapi.Update, b.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, queueSize)
		wg.Add(1)
		go func(q <-chan tgbotapi.Update) {
			defer wg.Done()
			for upd := range q {
				b.handle(ctx, upd)
			}
		}(queues[i])
	}
	defer func() {
		for _, q := range queues {
			close(q)
		}
		wg.Wait()
		// воркеры остановлены, новых уведомлений не будет
		b.waitNotices()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			id := senderID(upd)
			if id == 0 {
				continue
			}
			select {
			case queues[shard(id, len(queues))] <- upd:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (b *Bot) handle(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("update handler panic", "update_id", upd.UpdateID, "panic", r)
		}
	}()

	if upd.Message != nil {
		b.onMessage(ctx, upd.Message)
	} else if upd.CallbackQuery != nil {
		b.onCallback(ctx, upd.CallbackQuery)
	}
}
