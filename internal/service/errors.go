package service

import "errors"

var (
	ErrWordNotFound = errors.New("word not found")
	ErrIncorrectPin = errors.New("incorrect PIN")
	ErrNoPrompt     = errors.New("no PIN prompt is open")
)

// User-facing messages
const (
	MsgIncorrectPin       = "Incorrect PIN. Please try again."
	MsgDeleteConfirmation = "Are you sure you want to delete this word?"
	MsgBulkSkipped        = `Some lines were not in "word: meaning" format and were skipped.`
	MsgBulkEmpty          = "No valid words found in the bulk input."
	MsgNoWords            = "No words available. Please add words in Teacher Mode."
)
