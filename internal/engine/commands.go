package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/catalog-bot/internal/callback"
	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/items"
)

const mineLimit = 10

// menuCommands: надписи нижней клавиатуры работают как команды.
var menuCommands = map[string]string{
	MenuProducts:    CmdProducts,
	MenuServices:    CmdServices,
	MenuEducational: CmdEducational,
	MenuInquiry:     CmdInquiry,
	MenuMine:        CmdMine,
}

// onCommand любая команда обрывает текущий диалог, черновик не сохраняется.
func (e *Engine) onCommand(ctx context.Context, s *dialog.Session, cmd, args string) ([]Reply, error) {
	active := s.State != dialog.StateIdle
	if s.State.InInquiry() {
		e.log.Debug("inquiry abandoned", "user_id", s.UserID, "state", s.State, "command", cmd)
	}
	s.Clear()

	switch cmd {
	case CmdStart:
		return []Reply{{Text: textWelcome, Menu: true}}, nil
	case CmdHelp:
		return []Reply{{Text: textHelp, Menu: true}}, nil
	case CmdProducts:
		return e.openRoot(ctx, s, catalog.TypeProduct)
	case CmdServices:
		return e.openRoot(ctx, s, catalog.TypeService)
	case CmdEducational:
		return e.openRoot(ctx, s, catalog.TypeEducational)
	case CmdInquiry:
		return e.startGeneralInquiry(s), nil
	case CmdCancel:
		if active {
			return []Reply{{Text: textCancelled, Menu: true}}, nil
		}
		return []Reply{{Text: textNothingCancel, Menu: true}}, nil
	case CmdSearch:
		return e.search(ctx, args)
	case CmdMine:
		return e.mine(ctx, s)
	}
	return []Reply{{Text: textUnknownCommand, Menu: true}}, nil
}

func (e *Engine) onText(ctx context.Context, s *dialog.Session, text string) ([]Reply, error) {
	// нижняя клавиатура видна и во время анкеты: её кнопки обрывают запрос
	if cmd, ok := menuCommands[strings.TrimSpace(text)]; ok {
		return e.onCommand(ctx, s, cmd, "")
	}
	if s.State.InInquiry() {
		return e.onInquiryText(s, text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []Reply{{Text: textUseMenu, Menu: true}}, nil
	}
	// свободный текст вне анкеты: поиск по каталогу
	return e.search(ctx, text)
}

func (e *Engine) onCallback(ctx context.Context, s *dialog.Session, ev Event) ([]Reply, error) {
	d := ev.Callback
	switch d.Action {
	case callback.ActionCategory:
		return e.openCategory(ctx, s, d.Type, d.ID)
	case callback.ActionItem:
		return e.openItem(ctx, s, d.Type, d.ID)
	case callback.ActionMedia:
		return e.showMedia(ctx, d.Type, d.ID)
	case callback.ActionBack:
		return e.back(ctx, s)
	case callback.ActionInquiry:
		return e.startInquiry(ctx, s, d.Type, d.ID)
	case callback.ActionConfirm:
		return e.confirm(ctx, s)
	case callback.ActionCancel:
		return e.cancel(s), nil
	}
	return e.malformed(s, d.String()), nil
}

// search не меняет состояние, результаты это обычные кнопки item:*.
func (e *Engine) search(ctx context.Context, query string) ([]Reply, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []Reply{{Text: textSearchUsage}}, nil
	}
	found, err := e.items.Search(ctx, q, items.Filter{Limit: e.opts.SearchLimit})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	if len(found) == 0 {
		return []Reply{{Text: textNothingFound}}, nil
	}
	rows := make([][]Button, 0, len(found))
	for _, it := range found {
		rows = append(rows, []Button{{
			Text: typeIcon(it.Type) + " " + itemLabel(it),
			Data: callback.Item(it.Type, it.ID),
		}})
	}
	return []Reply{{Text: fmt.Sprintf(textSearchResults, q), Buttons: rows}}, nil
}

func (e *Engine) mine(ctx context.Context, s *dialog.Session) ([]Reply, error) {
	list, err := e.inquiries.ListByUser(ctx, s.UserID, mineLimit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	if len(list) == 0 {
		return []Reply{{Text: textMineEmpty, Menu: true}}, nil
	}
	var sb strings.Builder
	sb.WriteString(textMineTitle)
	for _, in := range list {
		fmt.Fprintf(&sb, "\n#%d · %s · %s", in.ID, in.CreatedAt.In(e.opts.Location).Format("2006-01-02"), statusLabel(in.Status))
	}
	return []Reply{{Text: sb.String(), Menu: true}}, nil
}
