package engine

import "github.com/Spok95/catalog-bot/internal/domain/media"

type Button struct {
	Text string
	Data string
}

// Reply: то, что нужно показать пользователю; транспорт сам решает, как отрисовать.
type Reply struct {
	Text    string
	Buttons [][]Button
	Media   *media.Media  // главное фото/видео, Text уходит подписью
	Album   []media.Media // все вложения позиции
	Menu    bool          // показать нижнюю клавиатуру разделов
}
