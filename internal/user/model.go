package user

import "time"

// User is a Telegram or web app user.
type User struct {
	ID         int64     `db:"id" json:"id"`
	TelegramID int64     `db:"telegram_id" json:"telegram_id"`
	Username   string    `db:"username" json:"username"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Balance    int64     `db:"balance" json:"balance"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Profile struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username" validate:"max=64"`
	FirstName  string `json:"first_name" validate:"max=128"`
	LastName   string `json:"last_name" validate:"max=128"`
}

// WebAppProfile is used for users that first appear through the web app
// without a Telegram profile.
func WebAppProfile(telegramID int64) Profile {
	return Profile{
		TelegramID: telegramID,
		Username:   "webapp_user",
		FirstName:  "WebApp",
		LastName:   "User",
	}
}
