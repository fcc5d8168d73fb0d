package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir == "" {
		localesDir = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, _ := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if localized == "" {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Generate release notes from the commits since the last tag"

	[app_description]
	other = "Walks the commit range since the latest tag (or an explicit start point), resolves pull request numbers, consolidates automated dependency updates and prints human-readable release notes."

	[flag_clipboard]
	other = "Copy output to clipboard"

	[flag_include_prs]
	other = "Include PR numbers in output"

	[flag_raw_commits]
	other = "List the raw commits that form the basis of the output"

	[flag_debug]
	other = "Enable debug logging"

	[flag_terse]
	other = "Output only the note lines, no headers or other text"

	[flag_tag]
	other = "Use this tag as the start point instead of the latest tag"

	[flag_commit]
	other = "Use this commit hash as the start point instead of a tag"

	[notes_latest_release]
	other = "Latest release: {{.Ref}}"

	[notes_commits_since]
	other = "Commits since {{.Ref}}:"

	[notes_dependency_header]
	other = "## Dependency updates:"

	[notes_other_header]
	other = "## Other changes:"

	[notes_raw_commits_header]
	other = "## Commits in range:"

	[notes_major_warning]
	other = "⚠ WARNING: major version changes detected: {{.Changes}}"

	[notes_empty_range]
	other = "No commits since {{.Ref}}, nothing to do"

	[warn_dirty_worktree]
	other = "You have local changes; the notes reflect committed work only"

	[warn_not_default_branch]
	other = "You are on '{{.Branch}}', not '{{.Default}}'; notes are generated from HEAD"

	[ui_try_suggestion]
	other = "💡 Try: "

	[spinner_generating]
	other = "Generating release notes"

	[clipboard_copied]
	other = "Release notes copied to clipboard"

	[clipboard_error]
	other = "Failed to copy to clipboard: {{.Error}}"
	`
