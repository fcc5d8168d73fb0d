package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeGit           ErrorType = "GIT"
	TypeVCS           ErrorType = "VCS"
	TypeNotes         ErrorType = "NOTES"
	TypeInternal      ErrorType = "INTERNAL"
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
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches derived copies (WithError/WithContext/WithSuggestion) against
// their sentinel, so errors.Is(err, ErrTagNotFound) works on enriched errors.
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

// Git errors
var (
	ErrNotInGitRepo = NewAppError(TypeGit, "Not in a git repository", nil).
			WithSuggestion("Run releasemate from inside a git repository")

	ErrGetBranch = NewAppError(TypeGit, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)

	ErrGetCommits = NewAppError(TypeGit, "Failed to list commits for range", nil).
			WithSuggestion("Verify the ref exists: git log <ref>..HEAD --oneline")

	ErrNoTagsFound = NewAppError(TypeGit, "No tags found in repository", nil).
			WithSuggestion("Create a tag first (git tag v1.0.0) or pass an explicit start point with -t <tag> or -C <commit>")

	ErrGetTags = NewAppError(TypeGit, "Failed to read tags", nil).
			WithSuggestion("Check the repository state: git describe --tags")

	ErrTagNotFound = NewAppError(TypeGit, "Tag not found in repository", nil).
			WithSuggestion("List available tags: git tag -l")

	ErrCommitNotFound = NewAppError(TypeGit, "Commit not found in repository", nil).
				WithSuggestion("Check the hash: git log --oneline")

	ErrFetchTags = NewAppError(TypeGit, "Failed to fetch tags from remote", nil).
			WithSuggestion("Check your network connection and remote access")
)

// VCS errors
var (
	ErrVCSSearch = NewAppError(TypeVCS, "pull request search failed", nil).
			WithSuggestion("Check your GITHUB_TOKEN and rate limits")

	ErrVCSGetPR = NewAppError(TypeVCS, "failed to fetch pull request", nil)

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub rate limit reached", nil).
				WithSuggestion("Wait a few minutes or set a GITHUB_TOKEN with higher limits")
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Delete ~/.releasemate/config.json to regenerate defaults")
)

// Clipboard errors
var (
	ErrClipboardCopy = NewAppError(TypeInternal, "Failed to copy to clipboard", nil).
				WithSuggestion("On Linux, install xclip or xsel")
)
