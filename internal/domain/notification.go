package domain

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a human-readable status message for the operator.
type Notification struct {
	Level       NotificationLevel
	Title       string
	Description string
}
