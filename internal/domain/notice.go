package domain

import "time"

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeDanger  NoticeLevel = "danger"
)

// Notice is a transient, auto-dismissed user notification.
// A zero TTL means the notifier's default.
type Notice struct {
	Level   NoticeLevel
	Message string
	TTL     time.Duration
}

func (n Notice) IsZero() bool {
	return n.Message == ""
}

func Success(message string) Notice { return Notice{Level: NoticeSuccess, Message: message} }
func Info(message string) Notice    { return Notice{Level: NoticeInfo, Message: message} }
func Warning(message string) Notice { return Notice{Level: NoticeWarning, Message: message} }
func Danger(message string) Notice  { return Notice{Level: NoticeDanger, Message: message} }
