package inquiries

import (
	"errors"
	"time"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var (
	ErrBothTargets  = errors.New("inquiry: product and service are mutually exclusive")
	ErrNotInquiable = errors.New("inquiry: item type does not accept inquiries")
	ErrMissingField = errors.New("inquiry: name, phone and description are required")
)

// Inquiry Запрос цены. ProductID/ServiceID взаимоисключающие, оба nil: общий запрос.
type Inquiry struct {
	ID            int64
	UserID        int64 // Telegram ID отправителя
	Name          string
	Phone         string
	Description   string
	ProductID     *int64
	ServiceID     *int64
	Status        Status
	SubmissionKey string // ключ идемпотентности, один на черновик
	CreatedAt     time.Time
}

// Target привязывает запрос к позиции нужного типа.
func (i *Inquiry) Target(t catalog.Type, itemID int64) error {
	id := itemID
	switch t {
	case catalog.TypeProduct:
		i.ProductID, i.ServiceID = &id, nil
	case catalog.TypeService:
		i.ProductID, i.ServiceID = nil, &id
	default:
		return ErrNotInquiable
	}
	return nil
}

func (i Inquiry) Validate() error {
	if i.ProductID != nil && i.ServiceID != nil {
		return ErrBothTargets
	}
	if i.Name == "" || i.Phone == "" || i.Description == "" {
		return ErrMissingField
	}
	return nil
}
