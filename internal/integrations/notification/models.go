package notification

// Severity уровень важности уведомления
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeveritySuccess Severity = "SUCCESS"
	SeverityWarning Severity = "WARNING"
)

// Notification событие, доставляемое пользователю сервисом уведомлений
type Notification struct {
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
