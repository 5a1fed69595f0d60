// Package callback кодирует и разбирает data inline-кнопок.
// Строка разбирается один раз на входе, дальше бот работает с Data.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

type Action string

const (
	ActionCategory Action = "category"        // category:<type>:<id>
	ActionItem     Action = "item"            // item:<type>:<id>
	ActionInquiry  Action = "inquiry"         // inquiry:<type>:<itemId>
	ActionMedia    Action = "media"           // media:<type>:<itemId>
	ActionBack     Action = "back"            // back
	ActionConfirm  Action = "confirm_inquiry" // confirm_inquiry
	ActionCancel   Action = "cancel"          // cancel
)

var ErrMalformed = errors.New("malformed callback data")

// Telegram ограничивает callback_data 64 байтами.
const maxLen = 64

type Data struct {
	Action Action
	Type   catalog.Type
	ID     int64
}

func Parse(raw string) (Data, error) {
	if raw == "" || len(raw) > maxLen {
		return Data{}, ErrMalformed
	}
	parts := strings.Split(raw, ":")
	action := Action(parts[0])

	switch action {
	case ActionBack, ActionConfirm, ActionCancel:
		if len(parts) != 1 {
			return Data{}, ErrMalformed
		}
		return Data{Action: action}, nil

	case ActionCategory, ActionItem, ActionInquiry, ActionMedia:
		if len(parts) != 3 {
			return Data{}, ErrMalformed
		}
		t, ok := catalog.ParseType(parts[1])
		if !ok {
			return Data{}, ErrMalformed
		}
		if action == ActionInquiry && !t.Inquirable() {
			return Data{}, ErrMalformed
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || id <= 0 {
			return Data{}, ErrMalformed
		}
		return Data{Action: action, Type: t, ID: id}, nil
	}
	return Data{}, ErrMalformed
}

func (d Data) String() string {
	switch d.Action {
	case ActionBack, ActionConfirm, ActionCancel:
		return string(d.Action)
	}
	return fmt.Sprintf("%s:%s:%d", d.Action, d.Type, d.ID)
}

func Category(t catalog.Type, id int64) string {
	return Data{Action: ActionCategory, Type: t, ID: id}.String()
}

func Item(t catalog.Type, id int64) string {
	return Data{Action: ActionItem, Type: t, ID: id}.String()
}

func Inquiry(t catalog.Type, itemID int64) string {
	return Data{Action: ActionInquiry, Type: t, ID: itemID}.String()
}

func Media(t catalog.Type, itemID int64) string {
	return Data{Action: ActionMedia, Type: t, ID: itemID}.String()
}

func Back() string    { return string(ActionBack) }
func Confirm() string { return string(ActionConfirm) }
func Cancel() string  { return string(ActionCancel) }
