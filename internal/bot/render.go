package bot

import (
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/domain/media"
	"github.com/Spok95/catalog-bot/internal/engine"
)

// Лимиты Telegram
const (
	maxTextLen    = 4096
	maxCaptionLen = 1024
	maxAlbumSize  = 10
)

// messages превращает ответ движка в сообщения Telegram.
func messages(chatID int64, r engine.Reply) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable
	if len(r.Album) > 0 {
		out = append(out, album(chatID, r.Album)...)
	}

	kb, hasKB := inlineKeyboard(r.Buttons)
	markup := func() any {
		if hasKB {
			return kb
		}
		if r.Menu {
			return mainKeyboard()
		}
		return nil
	}

	if r.Media != nil {
		// подпись короткая: текст и кнопки идут вместе с файлом
		if utf8.RuneCountInString(r.Text) <= maxCaptionLen {
			return append(out, mediaMessage(chatID, *r.Media, r.Text, markup()))
		}
		out = append(out, mediaMessage(chatID, *r.Media, "", nil))
	}

	if r.Text == "" {
		return out
	}
	parts := splitText(r.Text, maxTextLen)
	for i, p := range parts {
		msg := tgbotapi.NewMessage(chatID, p)
		if i == len(parts)-1 {
			if m := markup(); m != nil {
				msg.ReplyMarkup = m
			}
		}
		out = append(out, msg)
	}
	return out
}

// editMessage экран навигации можно нарисовать поверх нажатого сообщения:
// только текст с inline-кнопками.
func editMessage(chatID int64, messageID int, r engine.Reply) (tgbotapi.Chattable, bool) {
	if r.Media != nil || len(r.Album) > 0 || r.Menu || len(r.Buttons) == 0 {
		return nil, false
	}
	if r.Text == "" || utf8.RuneCountInString(r.Text) > maxTextLen {
		return nil, false
	}
	kb, _ := inlineKeyboard(r.Buttons)
	return tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, r.Text, kb), true
}

func mediaMessage(chatID int64, m media.Media, caption string, markup any) tgbotapi.Chattable {
	file := tgbotapi.FileID(m.FileID)
	if m.Kind == media.KindVideo {
		v := tgbotapi.NewVideo(chatID, file)
		v.Caption = caption
		v.ReplyMarkup = markup
		return v
	}
	p := tgbotapi.NewPhoto(chatID, file)
	p.Caption = caption
	p.ReplyMarkup = markup
	return p
}

// album режется по 10 файлов; одиночный остаток уходит обычным сообщением.
func album(chatID int64, list []media.Media) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable
	for start := 0; start < len(list); start += maxAlbumSize {
		end := min(start+maxAlbumSize, len(list))
		chunk := list[start:end]
		if len(chunk) == 1 {
			out = append(out, mediaMessage(chatID, chunk[0], "", nil))
			continue
		}
		files := make([]any, 0, len(chunk))
		for _, m := range chunk {
			if m.Kind == media.KindVideo {
				files = append(files, tgbotapi.NewInputMediaVideo(tgbotapi.FileID(m.FileID)))
			} else {
				files = append(files, tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(m.FileID)))
			}
		}
		out = append(out, tgbotapi.NewMediaGroup(chatID, files))
	}
	return out
}

// splitText режет по строкам, чтобы не рвать слова; слишком длинная строка режется по символам.
func splitText(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, line := range splitLines(s) {
		rl := []rune(line)
		if len(cur)+len(rl) > limit {
			flush()
		}
		for len(rl) > limit {
			out = append(out, string(rl[:limit]))
			rl = rl[limit:]
		}
		cur = append(cur, rl...)
	}
	flush()
	return out
}

// splitLines оставляет "\n" в конце каждой строки.
func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
