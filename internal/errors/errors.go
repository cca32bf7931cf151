package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeInitialization ErrorType = "INITIALIZATION"
	TypeAuthentication ErrorType = "AUTHENTICATION"
	TypeNotFound       ErrorType = "NOT_FOUND"
	TypeAPI            ErrorType = "API"
	TypeStorage        ErrorType = "STORAGE"
	TypePrecondition   ErrorType = "PRECONDITION"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\n%s", e.Suggestion)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError sharing the same type and message, so sentinel
// errors remain comparable with errors.Is after WithError/WithContext.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Client initialization errors
var (
	ErrClientInit = NewAppError(TypeInitialization, "failed to initialize github client", nil).
		WithSuggestion("Check the API URL format, it must be a valid http(s) URL")
)

// GitHub API errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeAuthentication, "GitHub authentication failed", nil).
				WithSuggestion("Verify the token is valid and has the 'repo' scope.\nGenerate a new token at: https://github.com/settings/tokens\nFor GitHub Enterprise, also verify the API URL is correct")

	ErrResourceNotFound = NewAppError(TypeNotFound, "GitHub resource not found", nil).
				WithSuggestion("Check the repository name uses the owner/repo format, the PR number exists, and the token has access to the repository")

	ErrGitHubAPI = NewAppError(TypeAPI, "GitHub API request failed", nil)
)

// Extraction errors
var (
	ErrServiceNotConfigured = NewAppError(TypePrecondition, "github service not provided", nil).
				WithSuggestion("Provide a positive PR number, a repository in owner/repo format and a GitHub token")

	ErrDiffWrite = NewAppError(TypeStorage, "failed to write diff file", nil).
			WithSuggestion("Check the temp directory is writable")
)
