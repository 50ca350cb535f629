package errors

import (
	"errors"
	"net/http"
)

// Auth gate rejections.
var (
	ErrQuotaExceeded       = errors.New("quota exceeded")
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrInternalFault       = errors.New("internal fault")
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserIDMissing        = errors.New("user id missing")
	ErrSignupFieldsRequired = errors.New("username, email and password are required")
	ErrLoginFieldsRequired  = errors.New("email and password are required")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
)

var (
	ErrNoteFieldsRequired  = errors.New("title and description are required")
	ErrNoteNotFound        = errors.New("note not found")
	ErrNoNotes             = errors.New("no notes found for user")
	ErrSearchQueryRequired = errors.New("search query not provided")
	ErrTargetUserRequired  = errors.New("target user id not provided")
	ErrTargetUserNotFound  = errors.New("target user not found")
	ErrSharedNoteNotFound  = errors.New("note not found for the authenticated user")
)

const InternalMessage = "Something went wrong"

type httpError struct {
	err     error
	status  int
	message string
}

var httpErrors = []httpError{
	{ErrQuotaExceeded, http.StatusTooManyRequests, "Too many requests, please try again later"},
	{ErrMissingCredential, http.StatusUnauthorized, "Authentication required. Please provide a valid token."},
	{ErrMalformedCredential, http.StatusUnauthorized, "Invalid token format. Please provide a valid Bearer token."},
	{ErrInvalidCredential, http.StatusUnauthorized, "Invalid token. Please log in again."},
	{ErrInternalFault, http.StatusInternalServerError, InternalMessage},

	{ErrInvalidInput, http.StatusBadRequest, "Invalid request body"},
	{ErrUserIDMissing, http.StatusBadRequest, "User ID not provided"},
	{ErrSignupFieldsRequired, http.StatusBadRequest, "All fields are required"},
	{ErrLoginFieldsRequired, http.StatusBadRequest, "Email and password are required"},
	{ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{ErrEmailAlreadyInUse, http.StatusBadRequest, "User already exists!"},
	{ErrUserNotFound, http.StatusNotFound, "User not found!"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token. Please log in again."},

	{ErrNoteFieldsRequired, http.StatusBadRequest, "Title and description are required"},
	{ErrNoteNotFound, http.StatusNotFound, "Note not found"},
	{ErrNoNotes, http.StatusNotFound, "No notes found for the user"},
	{ErrSearchQueryRequired, http.StatusBadRequest, "Search query not provided"},
	{ErrTargetUserRequired, http.StatusBadRequest, "Target user ID not provided"},
	{ErrTargetUserNotFound, http.StatusNotFound, "Target user not found"},
	{ErrSharedNoteNotFound, http.StatusNotFound, "Note not found for the authenticated user"},
}

// HTTPStatus maps err to the status code and client-facing message.
// Unknown errors become a generic 500 so internals never leak.
func HTTPStatus(err error) (int, string) {
	for _, he := range httpErrors {
		if errors.Is(err, he.err) {
			return he.status, he.message
		}
	}
	return http.StatusInternalServerError, InternalMessage
}

// Reason returns a short label for err, used as a metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrMalformedCredential):
		return "malformed_credential"
	case errors.Is(err, ErrInvalidCredential):
		return "invalid_credential"
	default:
		return "internal_fault"
	}
}
