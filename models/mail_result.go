package models

// Outcome messages returned by the mail relay. They are intentionally generic;
// provider details only go to the server log.
const (
	MailSentMessage    = "Email sent successfully"
	MailFailedMessage  = "Failed to send email"
	ServerErrorMessage = "Server error"
)

// MailResult is the JSON body returned by the mail relay endpoint
type MailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MailSent is the result of a successful dispatch
func MailSent() MailResult {
	return MailResult{Success: true, Message: MailSentMessage}
}

// MailFailed is the result of a dispatch rejected by the mail provider
func MailFailed() MailResult {
	return MailResult{Success: false, Message: MailFailedMessage}
}

// ServerError is the result of any unexpected failure in the relay
func ServerError() MailResult {
	return MailResult{Success: false, Message: ServerErrorMessage}
}
