package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/engine"
)

// mainKeyboard Нижняя панель (ReplyKeyboard) с разделами каталога
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(engine.MenuProducts), tgbotapi.NewKeyboardButton(engine.MenuServices)},
			{tgbotapi.NewKeyboardButton(engine.MenuEducational)},
			{tgbotapi.NewKeyboardButton(engine.MenuInquiry), tgbotapi.NewKeyboardButton(engine.MenuMine)},
		},
	}
}

func inlineKeyboard(rows [][]engine.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		kb = append(kb, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...), true
}
