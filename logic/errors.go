package logic

import "errors"

var (
	// ErrConversationNotFound covers both a missing conversation and one
	// owned by another user; callers cannot tell the two apart.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrUpstreamFailure signals that the chat provider call failed. The
	// user's message is already persisted when this is returned.
	ErrUpstreamFailure = errors.New("chat provider failure")

	ErrEmptyMessage   = errors.New("message content is empty")
	ErrMessageTooLong = errors.New("message content exceeds maximum length")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
