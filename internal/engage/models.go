package engage

// Progress is one student's completion percentage for one content block.
// Owned by the engagement tracker; the path builder only reads it.
type Progress struct {
	UserID    string  `json:"user_id"`
	BlockID   string  `json:"block_id"`
	Percent   float64 `json:"percent"` // 0..100
	UpdatedAt int64   `json:"updated_at,omitempty"`
}

// Complete reports whether the block counts as finished.
func (p Progress) Complete() bool { return p.Percent >= 100 }
