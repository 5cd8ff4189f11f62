package models

// Mode is the screen a client is on
type Mode string

const (
	ModeTeacher Mode = "teacher"
	ModePlay    Mode = "play"
)

// PinPrompt is the PIN dialog currently open for a client, if any
type PinPrompt string

const (
	PromptNone        PinPrompt = ""
	PromptSetPin      PinPrompt = "set_pin"
	PromptValidatePin PinPrompt = "validate_pin"
)

// ModeStatus describes the mode gate for display
type ModeStatus struct {
	Mode   Mode      `json:"mode"`
	Prompt PinPrompt `json:"prompt,omitempty"`
	PinSet bool      `json:"pin_set"`
}
