package users

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin" // получает уведомления о новых запросах
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Profile профиль из сохранённого пользователя
func (u User) Profile() Telegram {
	return Telegram{ID: u.TelegramID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

// DisplayName имя для сообщений админу
func (u Telegram) DisplayName() string {
	switch {
	case u.Username != "":
		return "@" + u.Username
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return "id " + itoa(u.ID)
}
