package catalog

// Course difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Content block types. Interactive and video blocks get a modality bonus
// when scored for remediation.
const (
	BlockText        = "text"
	BlockVideo       = "video"
	BlockInteractive = "interactive"
)

type Category struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

type Course struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Level      string     `json:"level"`
	Categories []Category `json:"categories,omitempty"`

	Lessons []Lesson `json:"lessons,omitempty"` // hydrated on import only

	CreatedAt int64 `json:"created_at,omitempty"`
}

type Lesson struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id,omitempty"`
	Title    string `json:"title"`
	Position int    `json:"position"`

	Blocks []ContentBlock `json:"blocks,omitempty"` // hydrated on import only
}

type ContentBlock struct {
	ID         string `json:"id"`
	LessonID   string `json:"lesson_id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	Type       string `json:"type"` // text|video|interactive
	IsRequired bool   `json:"is_required"`
	Position   int    `json:"position"`
}
