package recommend

type EntityType string

const (
	EntityCourse       EntityType = "course"
	EntityContentBlock EntityType = "content_block"
)

// Recommendation reasons are part of the client contract; do not reword.
const (
	ReasonCourse  = "Based on your learning profile and areas for improvement"
	ReasonContent = "Based on topics you may need additional help with"
)

// Recommendation is an append-only scored suggestion. Generation runs add new
// rows; nothing is ever updated in place.
type Recommendation struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Reason     string         `json:"reason"`
	Score      float64        `json:"score"` // 0..100
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  int64          `json:"created_at,omitempty"`
}

// TopicScore is an in-memory aggregate; it is never persisted.
type TopicScore struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

func (t TopicScore) Ratio() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}
