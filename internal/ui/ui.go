package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	apperrors "github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
)

// Spinner wraps a terminal spinner shown while the engine talks to the
// code host. All spinner output goes to stderr so the notes on stdout
// stay pipeable.
type Spinner struct {
	spinner *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(os.Stderr),
	)
	return &Spinner{spinner: s}
}

func (s *Spinner) Start() {
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// WithSpinner runs fn behind a spinner and stops it before anything else
// is printed.
func WithSpinner(message string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()
	defer s.Stop()
	return fn()
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

// HandleAppError displays an application error in a friendly way.
// If translations is nil, it falls back to English defaults.
func HandleAppError(err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(os.Stderr, err.Error())
		return
	}

	fmt.Fprintln(os.Stderr)
	_, _ = Error.Fprintf(os.Stderr, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if appErr.Err != nil {
		_, _ = Dim.Fprintf(os.Stderr, "   Details: %v\n", appErr.Err)
	}

	if appErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr)
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_try_suggestion", 0, nil)
		}
		_, _ = Info.Fprintf(os.Stderr, "%s", tryPrefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				fmt.Fprintln(os.Stderr, line)
			} else {
				fmt.Fprintf(os.Stderr, "       %s\n", line)
			}
		}
	}
	fmt.Fprintln(os.Stderr)
}
