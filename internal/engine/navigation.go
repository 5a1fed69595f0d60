package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Spok95/catalog-bot/internal/callback"
	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/items"
	"github.com/Spok95/catalog-bot/internal/domain/media"
	"github.com/Spok95/catalog-bot/internal/infra/metrics"
)

// maxDepth ограничивает подъём по parent_id при восстановлении пути.
const maxDepth = 64

// openRoot корень раздела: стек пустой.
func (e *Engine) openRoot(ctx context.Context, s *dialog.Session, t catalog.Type) ([]Reply, error) {
	s.Clear()
	s.State = dialog.StateBrowsing
	s.BrowseType = t
	return e.show(ctx, s)
}

func (e *Engine) openCategory(ctx context.Context, s *dialog.Session, t catalog.Type, id int64) ([]Reply, error) {
	node, err := e.cats.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return e.notFound(ctx, s, t)
	}
	if err != nil {
		return nil, fmt.Errorf("open category %d: %w", id, err)
	}
	if node.Type != t {
		return e.malformed(s, callback.Category(t, id)), nil
	}
	if err := e.focus(ctx, s, node); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return e.notFound(ctx, s, t)
		}
		return nil, err
	}
	s.State = dialog.StateBrowsing
	s.Item = nil
	s.Draft = dialog.Draft{}
	return e.show(ctx, s)
}

// focus делает node вершиной стека.
func (e *Engine) focus(ctx context.Context, s *dialog.Session, node *catalog.Category) error {
	if s.BrowseType != node.Type {
		s.Stack = nil
		s.BrowseType = node.Type
	}
	// категория уже в стеке (кнопка из старого сообщения): обрезаем до неё
	for i, f := range s.Stack {
		if f.CategoryID == node.ID {
			s.Stack = s.Stack[:i+1]
			s.Stack[i].Name = node.Name
			return nil
		}
	}
	top, ok := s.Top()
	switch {
	case node.ParentID == nil:
		s.Stack = []dialog.Frame{{CategoryID: node.ID, Name: node.Name}}
	case ok && top.CategoryID == *node.ParentID:
		s.Push(dialog.Frame{CategoryID: node.ID, Name: node.Name})
	default:
		path, err := e.ancestry(ctx, node)
		if err != nil {
			return err
		}
		s.Stack = path
	}
	return nil
}

// ancestry путь от корня до node включительно.
func (e *Engine) ancestry(ctx context.Context, node *catalog.Category) ([]dialog.Frame, error) {
	path := []dialog.Frame{{CategoryID: node.ID, Name: node.Name}}
	cur := node
	for cur.ParentID != nil {
		if len(path) >= maxDepth {
			return nil, fmt.Errorf("category %d: tree deeper than %d", node.ID, maxDepth)
		}
		parent, err := e.cats.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return nil, fmt.Errorf("ancestry of %d: %w", node.ID, err)
		}
		path = append(path, dialog.Frame{CategoryID: parent.ID, Name: parent.Name})
		cur = parent
	}
	slices.Reverse(path)
	return path, nil
}

func (e *Engine) openItem(ctx context.Context, s *dialog.Session, t catalog.Type, id int64) ([]Reply, error) {
	it, err := e.items.GetByID(ctx, t, id)
	if errors.Is(err, items.ErrNotFound) {
		return e.notFound(ctx, s, t)
	}
	if err != nil {
		return nil, fmt.Errorf("open item %s/%d: %w", t, id, err)
	}

	// «назад к списку» должен вернуть в категорию позиции
	if top, ok := s.Top(); !ok || s.BrowseType != t || top.CategoryID != it.CategoryID {
		node, err := e.cats.GetByID(ctx, it.CategoryID)
		if err == nil {
			err = e.focus(ctx, s, node)
		}
		if errors.Is(err, catalog.ErrNotFound) {
			return e.notFound(ctx, s, t)
		}
		if err != nil {
			return nil, fmt.Errorf("open item %s/%d: %w", t, id, err)
		}
	}

	files, err := e.media.ListByItem(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("item %s/%d media: %w", t, id, err)
	}

	s.State = dialog.StateViewingItem
	s.Item = &dialog.ItemRef{Type: t, ID: id, Name: it.Name}
	s.Draft = dialog.Draft{}
	return []Reply{itemCard(*it, files)}, nil
}

func (e *Engine) showMedia(ctx context.Context, t catalog.Type, id int64) ([]Reply, error) {
	files, err := e.media.ListByItem(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("item %s/%d media: %w", t, id, err)
	}
	if len(files) == 0 {
		return []Reply{{Text: textNoMedia}}, nil
	}
	return []Reply{{Album: files}}, nil
}

func (e *Engine) back(ctx context.Context, s *dialog.Session) ([]Reply, error) {
	switch {
	case s.State == dialog.StateViewingItem:
		// из карточки: в список, вершина стека уже категория позиции
		s.State = dialog.StateBrowsing
		s.Item = nil
	case s.State == dialog.StateBrowsing:
		s.Pop()
	case s.State.InInquiry():
		if s.Item != nil {
			ref := *s.Item
			return e.openItem(ctx, s, ref.Type, ref.ID)
		}
		s.Clear()
		return []Reply{{Text: textCancelled, Menu: true}}, nil
	default:
		return []Reply{{Text: textUseMenu, Menu: true}}, nil
	}
	if !s.BrowseType.Valid() {
		s.Clear()
		return []Reply{{Text: textUseMenu, Menu: true}}, nil
	}
	return e.show(ctx, s)
}

// notFound категория или позиция пропала: сбрасываем к корню раздела.
func (e *Engine) notFound(ctx context.Context, s *dialog.Session, t catalog.Type) ([]Reply, error) {
	metrics.Errors.WithLabelValues("not_found").Inc()
	s.Clear()
	s.State = dialog.StateBrowsing
	s.BrowseType = t
	r, err := e.renderLevel(ctx, s)
	if err != nil {
		return nil, err
	}
	return []Reply{{Text: textGone}, r}, nil
}

func (e *Engine) show(ctx context.Context, s *dialog.Session) ([]Reply, error) {
	r, err := e.renderLevel(ctx, s)
	if errors.Is(err, catalog.ErrNotFound) {
		return e.notFound(ctx, s, s.BrowseType)
	}
	if err != nil {
		return nil, err
	}
	return []Reply{r}, nil
}

// renderLevel рисует вершину стека: подкатегории, либо позиции листа.
// Результат зависит только от стека и содержимого каталога.
func (e *Engine) renderLevel(ctx context.Context, s *dialog.Session) (Reply, error) {
	t := s.BrowseType
	top, nested := s.Top()

	var (
		children []catalog.Category
		err      error
	)
	if nested {
		children, err = e.cats.ListChildren(ctx, top.CategoryID)
	} else {
		children, err = e.cats.ListRoots(ctx, t)
	}
	if err != nil {
		return Reply{}, fmt.Errorf("list categories: %w", err)
	}
	title := breadcrumb(s)

	if len(children) > 0 {
		counts := e.counts(ctx, t, children)
		rows := make([][]Button, 0, len(children)+1)
		for _, c := range children {
			label := c.Name
			if counts != nil {
				label = fmt.Sprintf("%s (%d)", c.Name, counts[c.ID])
			}
			rows = append(rows, []Button{{Text: label, Data: callback.Category(t, c.ID)}})
		}
		if nested {
			rows = append(rows, backRow(textBack))
		}
		return Reply{Text: title + "\n\n" + textPickCategory, Buttons: rows}, nil
	}

	if !nested {
		return Reply{Text: title + "\n\n" + textEmpty}, nil
	}

	list, err := e.items.ListByCategory(ctx, t, top.CategoryID)
	if err != nil {
		return Reply{}, fmt.Errorf("list items of %d: %w", top.CategoryID, err)
	}
	if len(list) == 0 {
		// пустой лист или удалённая категория
		if _, err := e.cats.GetByID(ctx, top.CategoryID); err != nil {
			return Reply{}, err
		}
		return Reply{Text: title + "\n\n" + textEmpty, Buttons: [][]Button{backRow(textBack)}}, nil
	}
	rows := make([][]Button, 0, len(list)+1)
	for _, it := range list {
		rows = append(rows, []Button{{Text: itemLabel(it), Data: callback.Item(t, it.ID)}})
	}
	rows = append(rows, backRow(textBack))
	return Reply{Text: title + "\n\n" + textPickItem, Buttons: rows}, nil
}

// counts без счётчиков список всё равно рисуем.
func (e *Engine) counts(ctx context.Context, t catalog.Type, list []catalog.Category) map[int64]int {
	ids := make([]int64, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	counts, err := e.cats.CountItems(ctx, t, ids)
	if err != nil {
		e.log.Warn("count items failed", "type", t, "err", err)
		return nil
	}
	return counts
}

func breadcrumb(s *dialog.Session) string {
	parts := make([]string, 0, len(s.Stack)+1)
	parts = append(parts, sectionTitle(s.BrowseType))
	for _, f := range s.Stack {
		parts = append(parts, f.Name)
	}
	return strings.Join(parts, " › ")
}

func backRow(label string) []Button {
	return []Button{{Text: label, Data: callback.Back()}}
}

func itemLabel(it items.Item) string {
	if it.Type == catalog.TypeProduct && !it.InStock {
		return it.Name + textOutOfStockS
	}
	return it.Name
}

func itemCard(it items.Item, files []media.Media) Reply {
	var sb strings.Builder
	sb.WriteString(it.Name)

	if it.Type.Inquirable() {
		sb.WriteString("\n")
		if it.Brand != "" {
			sb.WriteString("\n" + fmt.Sprintf(textBrand, it.Brand))
		}
		if it.Price != nil {
			sb.WriteString("\n" + fmt.Sprintf(textPrice, items.FormatPrice(*it.Price)))
		} else {
			sb.WriteString("\n" + textPriceAsk)
		}
		if it.Type == catalog.TypeProduct {
			if it.InStock {
				sb.WriteString("\n" + textInStock)
			} else {
				sb.WriteString("\n" + textOutOfStock)
			}
		}
	}
	if len(it.Tags) > 0 {
		tags := make([]string, len(it.Tags))
		for i, tag := range it.Tags {
			tags[i] = "#" + strings.ReplaceAll(tag, " ", "_")
		}
		sb.WriteString("\n" + strings.Join(tags, " "))
	}
	if it.Description != "" {
		sb.WriteString("\n\n" + it.Description)
	}

	cover, ok := media.Main(files)
	if !ok {
		sb.WriteString("\n\n" + textNoMedia)
	}

	var rows [][]Button
	if it.Type.Inquirable() {
		rows = append(rows, []Button{{Text: textRequest, Data: callback.Inquiry(it.Type, it.ID)}})
	}
	if len(files) > 1 {
		rows = append(rows, []Button{{Text: fmt.Sprintf(textMoreMedia, len(files)), Data: callback.Media(it.Type, it.ID)}})
	}
	rows = append(rows, backRow(textBackToList))

	r := Reply{Text: sb.String(), Buttons: rows}
	if ok {
		r.Media = &cover
	}
	return r
}
