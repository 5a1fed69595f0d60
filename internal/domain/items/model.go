package items

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

var ErrNotFound = errors.New("item not found")

// Item: товар, услуга или статья. Для статьи Name = заголовок, Description = текст.
type Item struct {
	ID          int64
	Type        catalog.Type
	Name        string
	Description string
	Price       *int64 // в минимальных единицах валюты; nil = цена по запросу
	Brand       string // имя бренда (для отображения)
	Tags        []string
	InStock     bool
	CategoryID  int64
	CreatedAt   time.Time
}

// Filter для текстового поиска
type Filter struct {
	Types       []catalog.Type
	InStockOnly bool
	Limit       int
}

// FormatPrice 1234567 -> "12,345.67"
func FormatPrice(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	major := strconv.FormatInt(minor/100, 10)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range major {
		if i > 0 && (len(major)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	frac := minor % 100
	sb.WriteByte('.')
	if frac < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.FormatInt(frac, 10))
	return sb.String()
}
