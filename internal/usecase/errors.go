package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
	ErrNoSession       = errors.New("no active session")
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrInvalidTarget   = errors.New("invalid connection target")
	ErrChatUnavailable = errors.New("chat requires a connection")
)

const (
	MessageLoginRequired     = "Please log in"
	MessageSessionExpired    = "Session expired. Please log in again."
	MessageUsersFailed       = "Failed to load users"
	MessageUnexpected        = "Unexpected response from server"
	MessageStatusFailed      = "Failed to check connection status"
	MessageConnectFailed     = "Failed to send connection request"
	MessageInvalidUserID     = "Invalid user ID"
	MessageInvalidConnection = "You cannot connect with this user"
	MessageChatUnavailable   = "You can only chat with your connections"
)
