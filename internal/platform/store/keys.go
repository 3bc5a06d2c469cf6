package store

const (
	KeyUser      = "aria_user"
	KeyDeadlines = "aria_deadlines"
	KeyNotes     = "aria_notes"
	KeyQuiz      = "aria_quiz"
	KeyGym       = "aria_gym"
	KeyPeriod    = "aria_period"
	KeyProgress  = "aria_progress"
	KeyTopics    = "aria_topics"
	KeyChat      = "aria_chat"
	KeyNotified  = "aria_notified"
	KeyEmailed   = "aria_emailed"
	KeyFinance   = "aria_finance"
	KeySession   = "aria_session"
)

// DomainKeys lists every key the application owns.
func DomainKeys() []string {
	return []string{
		KeyUser, KeyDeadlines, KeyNotes, KeyQuiz, KeyGym, KeyPeriod, KeyProgress,
		KeyTopics, KeyChat, KeyNotified, KeyEmailed, KeyFinance, KeySession,
	}
}
