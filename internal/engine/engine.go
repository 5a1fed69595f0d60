// Package engine: диалоговый автомат бота: навигация по дереву категорий
// и сбор запроса цены. Транспорт сюда не протекает: на входе Event, на выходе []Reply.
package engine

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/items"
	"github.com/Spok95/catalog-bot/internal/domain/media"
	"github.com/Spok95/catalog-bot/internal/infra/metrics"
)

type CategoryStore interface {
	ListRoots(ctx context.Context, t catalog.Type) ([]catalog.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]catalog.Category, error)
	GetByID(ctx context.Context, id int64) (*catalog.Category, error)
	CountItems(ctx context.Context, t catalog.Type, ids []int64) (map[int64]int, error)
}

type ItemStore interface {
	ListByCategory(ctx context.Context, t catalog.Type, categoryID int64) ([]items.Item, error)
	GetByID(ctx context.Context, t catalog.Type, id int64) (*items.Item, error)
	Search(ctx context.Context, query string, f items.Filter) ([]items.Item, error)
}

type MediaStore interface {
	ListByItem(ctx context.Context, t catalog.Type, itemID int64) ([]media.Media, error)
}

type InquiryStore interface {
	// Create возвращает false, если запрос с тем же SubmissionKey уже сохранён.
	Create(ctx context.Context, in *inquiries.Inquiry) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]inquiries.Inquiry, error)
}

// Notifier узнаёт о каждом новом сохранённом запросе. item == nil для общего запроса.
type Notifier interface {
	InquiryCommitted(ctx context.Context, in inquiries.Inquiry, item *dialog.ItemRef)
}

type Options struct {
	PhonePattern *regexp.Regexp // nil: принимаем любой непустой номер
	SearchLimit  int
	NewKey       func() string // ключ идемпотентности черновика
	Location     *time.Location // для дат в /my
}

type Engine struct {
	log       *slog.Logger
	cats      CategoryStore
	items     ItemStore
	media     MediaStore
	inquiries InquiryStore
	states    dialog.Store
	locks     *dialog.Locker
	notifier  Notifier
	opts      Options
}

func New(log *slog.Logger, cats CategoryStore, it ItemStore, md MediaStore, inq InquiryStore, states dialog.Store, opts Options) *Engine {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 10
	}
	if opts.NewKey == nil {
		opts.NewKey = uuid.NewString
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Engine{
		log:       log,
		cats:      cats,
		items:     it,
		media:     md,
		inquiries: inq,
		states:    states,
		locks:     dialog.NewLocker(),
		opts:      opts,
	}
}

// SetNotifier вызывается до начала обработки апдейтов.
func (e *Engine) SetNotifier(n Notifier) { e.notifier = n }

// Handle обрабатывает одно событие пользователя. События одного пользователя
// выполняются строго по очереди. Ошибки наружу не выходят: пользователь
// получает сообщение, ошибка уходит в лог.
func (e *Engine) Handle(ctx context.Context, userID int64, ev Event) []Reply {
	start := time.Now()
	defer func() { metrics.HandleDuration.Observe(time.Since(start).Seconds()) }()
	metrics.Updates.WithLabelValues(ev.Kind.String()).Inc()

	unlock := e.locks.Lock(userID)
	defer unlock()

	s, err := e.states.Get(ctx, userID)
	if err != nil {
		e.fail(userID, "load dialog state", err)
		return []Reply{{Text: textUnavailable}}
	}
	from := s.State

	replies, err := e.dispatch(ctx, s, ev)
	if err != nil {
		e.fail(userID, "handle "+ev.Kind.String(), err)
		return []Reply{{Text: textUnavailable}}
	}

	if err := e.save(ctx, s); err != nil {
		// состояние не сохранено: пусть пользователь повторит шаг
		e.fail(userID, "save dialog state", err)
		return []Reply{{Text: textUnavailable}}
	}

	if from != s.State {
		metrics.Transitions.WithLabelValues(string(from), string(s.State)).Inc()
	}
	e.log.Debug("event handled",
		"user_id", userID,
		"event", ev.Kind.String(),
		"action", string(ev.Callback.Action),
		"from", from,
		"state", s.State,
	)
	return replies
}

func (e *Engine) dispatch(ctx context.Context, s *dialog.Session, ev Event) ([]Reply, error) {
	switch ev.Kind {
	case EventCommand:
		return e.onCommand(ctx, s, ev.Command, ev.Text)
	case EventCallback:
		return e.onCallback(ctx, s, ev)
	case EventText:
		return e.onText(ctx, s, ev.Text)
	}
	return e.malformed(s, ev.Text), nil
}

func (e *Engine) save(ctx context.Context, s *dialog.Session) error {
	if s.State == dialog.StateIdle {
		return e.states.Reset(ctx, s.UserID)
	}
	return e.states.Set(ctx, s)
}

func (e *Engine) fail(userID int64, op string, err error) {
	metrics.Errors.WithLabelValues("internal").Inc()
	e.log.Error(op+" failed", "user_id", userID, "err", err)
}

// malformed: кнопка, которую мы не могли выпустить. Состояние не трогаем.
func (e *Engine) malformed(s *dialog.Session, raw string) []Reply {
	metrics.Errors.WithLabelValues("malformed").Inc()
	e.log.Warn("malformed event", "user_id", s.UserID, "state", s.State, "data", raw)
	return []Reply{{Text: textUseMenu}}
}
