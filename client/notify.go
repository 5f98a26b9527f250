package client

// Variant distinguishes positive from negative notifications
type Variant string

const (
	Positive Variant = "positive"
	Negative Variant = "negative"
)

// Toast is a transient notification shown after a submission settles
type Toast struct {
	Variant     Variant
	Title       string
	Description string
}

var (
	SuccessToast = Toast{
		Variant:     Positive,
		Title:       "Message Sent",
		Description: "Thank you for contacting us. We'll get back to you soon!",
	}
	FailureToast = Toast{
		Variant:     Negative,
		Title:       "Error",
		Description: "Failed to send message. Please try again later.",
	}
)

// Notifier displays toasts
type Notifier interface {
	Notify(Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Toast)

func (fn NotifierFunc) Notify(t Toast) { fn(t) }
