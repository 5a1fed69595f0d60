package media

import "github.com/Spok95/catalog-bot/internal/domain/catalog"

type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Media: ссылка на файл в Telegram (file_id), сам файл мы не храним.
type Media struct {
	ID       int64
	ItemType catalog.Type
	ItemID   int64
	FileID   string
	Kind     Kind
	IsMain   bool
	Position int
}

// Main картинка для карточки: помеченная is_main, иначе первое фото, иначе первый файл.
func Main(list []Media) (Media, bool) {
	for _, m := range list {
		if m.IsMain {
			return m, true
		}
	}
	for _, m := range list {
		if m.Kind == KindPhoto {
			return m, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return Media{}, false
}
