package dto

// DeadlineDraft is the add-deadline payload. With AskingForStartDate set it
// is held as the pending deadline instead of being saved.
type DeadlineDraft struct {
	Title              string `json:"title,omitempty"`
	Subject            string `json:"subject,omitempty"`
	DueDate            string `json:"dueDate,omitempty"`
	StartDate          string `json:"startDate,omitempty"`
	Type               string `json:"type,omitempty"`
	AskingForStartDate bool   `json:"askingForStartDate,omitempty"`
}

type Deadline struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subject       string `json:"subject"`
	DueDate       string `json:"dueDate"`
	StartDate     string `json:"startDate"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	CompletedAt   string `json:"completedAt,omitempty"`
	MidwayChecked bool   `json:"midwayChecked"`
	Urgency       string `json:"urgency,omitempty"`
	Color         string `json:"color,omitempty"`
}

type DeadlineUpdates struct {
	Title         *string `json:"title,omitempty"`
	Subject       *string `json:"subject,omitempty"`
	DueDate       *string `json:"dueDate,omitempty"`
	StartDate     *string `json:"startDate,omitempty"`
	Type          *string `json:"type,omitempty"`
	Status        *string `json:"status,omitempty"`
	MidwayChecked *bool   `json:"midwayChecked,omitempty"`
}

type UpdateDeadlineInput struct {
	ID      string
	Updates DeadlineUpdates
}

type CompleteDeadlineInput struct {
	ID    string
	Title string
}

type ListDeadlinesInput struct {
	IncludeDone bool
	Limit       int
}

type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type ListNotesInput struct {
	Query string
	Limit int
}

type ProgressEntry struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

type LogProgressInput struct {
	Summary string
	Date    string
}

type CompletedTopic struct {
	Topic string `json:"topic"`
	Date  string `json:"date"`
}

type TopicTracker struct {
	Topics    []string         `json:"topics"`
	Completed []CompletedTopic `json:"completed"`
}

type TopicMap map[string]TopicTracker

type AddTopicsInput struct {
	Subject string
	Topics  []string
}

type CompleteTopicInput struct {
	Subject string
	Topic   string
}

type CompleteTopicOutput struct {
	Subject      string
	Topic        string
	NewlyCreated bool
}

type EmailConfig struct {
	PubKey     string `json:"pubKey"`
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	ToEmail    string `json:"toEmail"`
}

type Profile struct {
	Name             string      `json:"name"`
	LeetcodeUsername string      `json:"leetcodeUsername"`
	Subjects         []string    `json:"subjects"`
	Email            EmailConfig `json:"emailjs"`
	Onboarded        bool        `json:"onboarded"`
	DisplayName      string      `json:"displayName"`
	UserID           string      `json:"userId"`
	EmailReady       bool        `json:"emailReady"`
}

type OnboardInput struct {
	Name             string
	LeetcodeUsername string
	Subjects         []string
}

// SettingsInput replaces the settings form. A blank Name keeps the old one.
type SettingsInput struct {
	Name             string
	LeetcodeUsername string
	Email            EmailConfig
}

type ExportOutput struct {
	Dir   string
	Files []string
}
