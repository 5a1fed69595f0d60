package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	var err error
	// альбом Telegram возвращает массивом сообщений, Send его не разбирает
	if mg, ok := msg.(tgbotapi.MediaGroupConfig); ok {
		_, err = b.api.SendMediaGroup(mg)
	} else {
		_, err = b.api.Send(msg)
	}
	if err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func senderID(upd tgbotapi.Update) int64 {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		return upd.Message.From.ID
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		return upd.CallbackQuery.From.ID
	}
	return 0
}

func shard(userID int64, n int) int {
	return int(uint64(userID) % uint64(n))
}

// isTextMessage у сообщения с фото/видео нельзя поменять текст, только подпись.
func isTextMessage(m *tgbotapi.Message) bool {
	return m != nil && len(m.Photo) == 0 && m.Video == nil && m.Text != ""
}
