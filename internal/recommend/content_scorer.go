package recommend

import (
	"strings"

	"github.com/edupath/edupath-backend/internal/catalog"
)

// matchesAnyTopic keeps a block as a remediation candidate when its title or
// body mentions any struggling topic. Case-insensitive substring match on the
// free-text topic label, no stemming.
func matchesAnyTopic(b catalog.ContentBlock, topics []string) bool {
	title := strings.ToLower(b.Title)
	body := strings.ToLower(b.Content)
	for _, t := range topics {
		lt := strings.ToLower(t)
		if strings.Contains(title, lt) || strings.Contains(body, lt) {
			return true
		}
	}
	return false
}

// scoreBlock rates a candidate block against the struggling-topic list.
// Title and body hits both count for the same topic; richer modalities
// (interactive, video) get a flat bonus.
func scoreBlock(b catalog.ContentBlock, topics []string) float64 {
	s := baseScore
	title := strings.ToLower(b.Title)
	body := strings.ToLower(b.Content)
	for _, t := range topics {
		lt := strings.ToLower(t)
		if strings.Contains(title, lt) {
			s += 10
		}
		if strings.Contains(body, lt) {
			s += 5
		}
	}
	if b.Type == catalog.BlockInteractive || b.Type == catalog.BlockVideo {
		s += 10
	}
	return clampScore(s)
}
