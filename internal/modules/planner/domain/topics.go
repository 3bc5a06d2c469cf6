package domain

type CompletedTopic struct {
	Topic string `json:"topic"`
	Date  string `json:"date"`
}

type TopicTracker struct {
	Topics    []string         `json:"topics"`
	Completed []CompletedTopic `json:"completed"`
}

// TopicMap is keyed by subject.
type TopicMap map[string]TopicTracker

func (m TopicMap) tracker(subject string) TopicTracker {
	t, ok := m[subject]
	if !ok {
		return TopicTracker{Topics: []string{}, Completed: []CompletedTopic{}}
	}
	if t.Topics == nil {
		t.Topics = []string{}
	}
	if t.Completed == nil {
		t.Completed = []CompletedTopic{}
	}
	return t
}

// AddTopics unions topics into the subject's list, keeping first-seen order.
// It reports how many were new.
func (m TopicMap) AddTopics(subject string, topics []string) int {
	t := m.tracker(subject)
	seen := make(map[string]struct{}, len(t.Topics))
	for _, topic := range t.Topics {
		seen[topic] = struct{}{}
	}
	added := 0
	for _, topic := range topics {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		t.Topics = append(t.Topics, topic)
		added++
	}
	m[subject] = t
	return added
}

// CompleteTopic records the topic once. Membership in Topics is not required.
func (m TopicMap) CompleteTopic(subject, topic, today string) bool {
	t := m.tracker(subject)
	for _, c := range t.Completed {
		if c.Topic == topic {
			m[subject] = t
			return false
		}
	}
	t.Completed = append(t.Completed, CompletedTopic{Topic: topic, Date: today})
	m[subject] = t
	return true
}
