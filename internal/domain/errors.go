package domain

import "errors"

var (
	// ErrInvalidInput is returned for malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoActiveSession is returned when an operation requires an active game.
	ErrNoActiveSession = errors.New("no active game session")
	// ErrInvalidIndex is returned when a question index is out of bounds.
	ErrInvalidIndex = errors.New("invalid question index")
	// ErrQuestionAnswered is returned when a position already has an answer.
	ErrQuestionAnswered = errors.New("question already answered")
	// ErrQuestionSource indicates the question store failed to sample.
	ErrQuestionSource = errors.New("failed to get questions")
	// ErrPersistence indicates the game result could not be saved.
	ErrPersistence = errors.New("failed to save game result")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates the user id does not exist or is inactive.
	ErrUserNotFound = errors.New("user not found")
)
