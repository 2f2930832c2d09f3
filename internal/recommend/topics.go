package recommend

import (
	"github.com/edupath/edupath-backend/internal/assess"
)

// Correctness thresholds. A topic below strugglingRatio is flagged regardless
// of sample size: a freshly introduced topic answered once and missed should
// surface rather than hide behind a minimum-N rule.
const (
	strugglingRatio = 0.70
	strengthRatio   = 0.80
)

const defaultTopic = "general"

// AggregateTopics reduces graded responses into per-topic tallies. Topics
// keep first-seen order so downstream lists are stable.
func AggregateTopics(responses []assess.GradedResponse) []TopicScore {
	idx := map[string]int{}
	out := []TopicScore{}
	for _, r := range responses {
		topic := r.Topic
		if topic == "" {
			topic = defaultTopic
		}
		i, ok := idx[topic]
		if !ok {
			i = len(out)
			idx[topic] = i
			out = append(out, TopicScore{Topic: topic})
		}
		out[i].Total++
		if r.Correct {
			out[i].Correct++
		}
	}
	return out
}

// Struggling returns topics with correctness strictly below 70%.
func Struggling(scores []TopicScore) []string {
	out := []string{}
	for _, s := range scores {
		if s.Total > 0 && s.Ratio() < strugglingRatio {
			out = append(out, s.Topic)
		}
	}
	return out
}

// Strengths returns topics with correctness of 80% or better.
func Strengths(scores []TopicScore) []string {
	out := []string{}
	for _, s := range scores {
		if s.Total > 0 && s.Ratio() >= strengthRatio {
			out = append(out, s.Topic)
		}
	}
	return out
}
