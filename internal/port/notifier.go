package port

type Notifier interface {
	// Error surfaces a user-facing failure message, fire-and-forget
	Error(message string)
}
