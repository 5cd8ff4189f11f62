package handlers

const (
	ErrInvalidFormData     = "Invalid form data"
	ErrInternalServerError = "Internal server error"
	ErrInvalidCSRFToken    = "Invalid or missing CSRF token"
	ErrTooManyRequests     = "Too many requests. Please slow down."
	ErrTeacherModeOnly     = "This action is only available in Teacher Mode."
	ErrPlayModeOnly        = "This action is only available in Play Mode."
	ErrInvalidWordIndex    = "Invalid word index"
	ErrNoPinPrompt         = "No PIN prompt is open."

	MsgSpeechUnavailable = "Speech is unavailable right now."
	MsgNothingToSpeak    = "There is nothing to read out yet."
)
