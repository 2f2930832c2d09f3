package path

// Path item entity types (distinct from recommendation entity types: a path
// never references a whole course).
const (
	EntityLesson       = "lesson"
	EntityContentBlock = "content_block"
)

// Path is created whole inside one transaction and never mutated afterward.
// New generations create new paths; nothing here auto-deactivates old ones.
type Path struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	Active    bool   `json:"is_active"`
	CreatedAt int64  `json:"created_at,omitempty"`

	Items []Item `json:"items"`
}

// Item is one ordered unit of the path. Position is a dense 1..N sequence
// assigned at construction; lessons interleave with their own blocks.
type Item struct {
	ID         string         `json:"id"`
	PathID     string         `json:"path_id,omitempty"`
	EntityType string         `json:"entity_type"` // lesson|content_block
	EntityID   string         `json:"entity_id"`
	Position   int            `json:"position"`
	Required   bool           `json:"is_required"`
	Criteria   map[string]any `json:"completion_criteria,omitempty"`
}
