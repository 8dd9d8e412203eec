package analysis

// DefaultOccasion is used when the form leaves the occasion empty.
const DefaultOccasion = "повседневный"

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Request struct {
	// TelegramID is zero for anonymous web requests; nothing is recorded for them.
	TelegramID  int64
	Occasion    string
	Preferences string
	Images      []Image
}

type Result struct {
	Advice         string
	Cached         bool
	ConsultationID int64
	Balance        *int64
}

type Metadata struct {
	Occasion    string `json:"occasion" example:"офис"`
	Preferences string `json:"preferences,omitempty"`
	Images      int    `json:"images" example:"1"`
	Timestamp   string `json:"timestamp"`
	Cached      bool   `json:"cached"`
}

type Response struct {
	Status         string   `json:"status" example:"success"`
	Advice         string   `json:"advice"`
	ConsultationID int64    `json:"consultation_id,omitempty"`
	Balance        *int64   `json:"balance,omitempty"`
	Metadata       Metadata `json:"metadata"`
}
