package services

// Notifier shows short user-facing messages. The CLI prints them; tests
// record them.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Warning(string) {}
func (nopNotifier) Error(string)   {}

// NopNotifier drops every message.
func NopNotifier() Notifier { return nopNotifier{} }
