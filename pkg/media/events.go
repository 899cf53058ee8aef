package media

import "time"

// Event types published to the media events queue.
const (
	EventVideoPublished = "video.published"
	EventVideoDeleted   = "video.deleted"
)

// Event is the message shape shared by the API and the media worker.
type Event struct {
	Type       string    `json:"type"`
	VideoID    string    `json:"video_id"`
	Owner      string    `json:"owner"`
	PublicIDs  []string  `json:"public_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
