package dialog

import (
	"time"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

type State string

const (
	StateIdle State = "idle"

	// Навигация по каталогу
	StateBrowsing    State = "browsing"     // список подкатегорий или позиций
	StateViewingItem State = "viewing_item" // карточка позиции

	// Запрос цены
	StateAwaitName        State = "await_name"
	StateAwaitPhone       State = "await_phone"
	StateAwaitDescription State = "await_description"
	StateAwaitConfirm     State = "await_confirm"
)

// InInquiry Пользователь заполняет запрос цены
func (s State) InInquiry() bool {
	switch s {
	case StateAwaitName, StateAwaitPhone, StateAwaitDescription, StateAwaitConfirm:
		return true
	}
	return false
}

// Frame: одна ступень навигации: открытая категория.
type Frame struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

// ItemRef выбранная позиция
type ItemRef struct {
	Type catalog.Type `json:"type"`
	ID   int64        `json:"id"`
	Name string       `json:"name"`
}

// Draft Черновик запроса цены
type Draft struct {
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Description   string `json:"description,omitempty"`
	SubmissionKey string `json:"submission_key,omitempty"`
}

type Session struct {
	UserID     int64        `json:"user_id"`
	State      State        `json:"state"`
	BrowseType catalog.Type `json:"browse_type,omitempty"`
	Stack      []Frame      `json:"stack,omitempty"`
	Item       *ItemRef     `json:"item,omitempty"`
	Draft      Draft        `json:"draft"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func NewSession(userID int64) *Session {
	return &Session{UserID: userID, State: StateIdle}
}

// Clear возвращает сессию в idle и выбрасывает всё собранное.
func (s *Session) Clear() {
	*s = Session{UserID: s.UserID, State: StateIdle}
}

func (s *Session) Push(f Frame) {
	s.Stack = append(s.Stack, f)
}

func (s *Session) Pop() (Frame, bool) {
	if len(s.Stack) == 0 {
		return Frame{}, false
	}
	f := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return f, true
}

func (s *Session) Top() (Frame, bool) {
	if len(s.Stack) == 0 {
		return Frame{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Clone глубокая копия: сторы не должны делить срезы с вызывающим кодом.
func (s *Session) Clone() *Session {
	c := *s
	if s.Stack != nil {
		c.Stack = append([]Frame(nil), s.Stack...)
	}
	if s.Item != nil {
		item := *s.Item
		c.Item = &item
	}
	return &c
}
