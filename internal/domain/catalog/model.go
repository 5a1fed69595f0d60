package catalog

import (
	"errors"
	"time"
)

type Type string

const (
	TypeProduct     Type = "product"     // товары
	TypeService     Type = "service"     // услуги
	TypeEducational Type = "educational" // обучающие статьи
)

// Types: три независимых дерева в порядке меню
var Types = []Type{TypeProduct, TypeService, TypeEducational}

var ErrNotFound = errors.New("category not found")

func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, t.Valid()
}

func (t Type) Valid() bool {
	switch t {
	case TypeProduct, TypeService, TypeEducational:
		return true
	}
	return false
}

// Inquirable На позиции этого типа можно оставить запрос цены
func (t Type) Inquirable() bool {
	return t == TypeProduct || t == TypeService
}

type Category struct {
	ID        int64
	Name      string
	Type      Type
	ParentID  *int64
	CreatedAt time.Time
}

func (c Category) IsRoot() bool { return c.ParentID == nil }
