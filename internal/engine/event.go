package engine

import (
	"strings"

	"github.com/Spok95/catalog-bot/internal/callback"
)

type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventCallback
	EventMalformed // кнопка с неразбираемой data
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	case EventCallback:
		return "callback"
	}
	return "malformed"
}

// Event: входящее событие, уже разобранное на границе транспорта.
type Event struct {
	Kind     EventKind
	Text     string // текст сообщения или аргументы команды
	Command  string
	Callback callback.Data
}

func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

func CommandEvent(name, args string) Event {
	return Event{Kind: EventCommand, Command: strings.ToLower(name), Text: args}
}

// CallbackEvent разбирает data кнопки. Битая data становится EventMalformed.
func CallbackEvent(raw string) Event {
	d, err := callback.Parse(raw)
	if err != nil {
		return Event{Kind: EventMalformed, Text: raw}
	}
	return Event{Kind: EventCallback, Callback: d}
}
