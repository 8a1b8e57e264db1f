package interfaces

// Notifier surfaces short messages to the user.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// View is anything rendering an index that must be redrawn after a change.
type View interface {
	Refresh()
}

// StatusBar shows the one-line object count summary.
type StatusBar interface {
	SetText(text string)
}
