package consultation

import "time"

const (
	KindSingle  = "single"
	KindCompare = "compare"
)

// Consultation is an immutable record of advice given to a user.
type Consultation struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Kind        string    `db:"kind" json:"kind"`
	Occasion    string    `db:"occasion" json:"occasion"`
	Preferences string    `db:"preferences" json:"preferences"`
	ImagePath   string    `db:"image_path" json:"image_path"`
	Advice      string    `db:"advice" json:"advice"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
