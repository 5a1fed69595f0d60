package engine

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/items"
	"github.com/Spok95/catalog-bot/internal/domain/media"
)

type itemKey struct {
	t  catalog.Type
	id int64
}

// fakeCatalog: дерево категорий, позиции и вложения в памяти.
type fakeCatalog struct {
	cats  map[int64]catalog.Category
	items map[itemKey]items.Item
	media map[itemKey][]media.Media
	err   error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		cats:  map[int64]catalog.Category{},
		items: map[itemKey]items.Item{},
		media: map[itemKey][]media.Media{},
	}
}

func (f *fakeCatalog) addCategory(id int64, t catalog.Type, name string, parent int64) {
	c := catalog.Category{ID: id, Type: t, Name: name}
	if parent != 0 {
		p := parent
		c.ParentID = &p
	}
	f.cats[id] = c
}

func (f *fakeCatalog) addItem(id int64, t catalog.Type, name string, categoryID int64) {
	f.items[itemKey{t, id}] = items.Item{ID: id, Type: t, Name: name, CategoryID: categoryID, InStock: true}
}

func sortCategories(list []catalog.Category) {
	slices.SortFunc(list, func(a, b catalog.Category) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

func (f *fakeCatalog) ListRoots(_ context.Context, t catalog.Type) ([]catalog.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []catalog.Category
	for _, c := range f.cats {
		if c.ParentID == nil && c.Type == t {
			out = append(out, c)
		}
	}
	sortCategories(out)
	return out, nil
}

func (f *fakeCatalog) ListChildren(_ context.Context, parentID int64) ([]catalog.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []catalog.Category
	for _, c := range f.cats {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	sortCategories(out)
	return out, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*catalog.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cats[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCatalog) CountItems(_ context.Context, t catalog.Type, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	for _, id := range ids {
		out[id] = f.subtreeItems(t, id)
	}
	return out, nil
}

func (f *fakeCatalog) subtreeItems(t catalog.Type, id int64) int {
	n := 0
	for k, it := range f.items {
		if k.t == t && it.CategoryID == id {
			n++
		}
	}
	for _, c := range f.cats {
		if c.ParentID != nil && *c.ParentID == id {
			n += f.subtreeItems(t, c.ID)
		}
	}
	return n
}

// items: ItemStore поверх того же каталога
type fakeItems struct{ *fakeCatalog }

func (f fakeItems) ListByCategory(_ context.Context, t catalog.Type, categoryID int64) ([]items.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []items.Item
	for k, it := range f.items {
		if k.t == t && it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b items.Item) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (f fakeItems) GetByID(_ context.Context, t catalog.Type, id int64) (*items.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	it, ok := f.items[itemKey{t, id}]
	if !ok {
		return nil, items.ErrNotFound
	}
	return &it, nil
}

func (f fakeItems) Search(_ context.Context, query string, flt items.Filter) ([]items.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := strings.ToLower(query)
	var out []items.Item
	for _, it := range f.items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b items.Item) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakeCatalog) ListByItem(_ context.Context, t catalog.Type, itemID int64) ([]media.Media, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.media[itemKey{t, itemID}], nil
}

// fakeInquiries повторяет ON CONFLICT (submission_key) DO NOTHING.
type fakeInquiries struct {
	mu   sync.Mutex
	rows []inquiries.Inquiry
	err  error
}

func (f *fakeInquiries) Create(_ context.Context, in *inquiries.Inquiry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if in.ProductID != nil && in.ServiceID != nil {
		return false, fmt.Errorf("check constraint: %w", inquiries.ErrBothTargets)
	}
	for _, r := range f.rows {
		if r.SubmissionKey == in.SubmissionKey {
			return false, nil
		}
	}
	in.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *in)
	return true, nil
}

func (f *fakeInquiries) ListByUser(_ context.Context, userID int64, limit int) ([]inquiries.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inquiries.Inquiry
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeInquiries) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeNotifier struct {
	got []inquiries.Inquiry
}

func (n *fakeNotifier) InquiryCommitted(_ context.Context, in inquiries.Inquiry, _ *dialog.ItemRef) {
	n.got = append(n.got, in)
}

// failingStore: хранилище сессий, которое всегда отвечает ошибкой.
type failingStore struct{ err error }

func (s failingStore) Get(context.Context, int64) (*dialog.Session, error) { return nil, s.err }
func (s failingStore) Set(context.Context, *dialog.Session) error         { return s.err }
func (s failingStore) Reset(context.Context, int64) error                  { return s.err }
