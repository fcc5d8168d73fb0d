package notes

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/releasemate/internal/clipboard"
	"github.com/thomas-vilte/releasemate/internal/config"
	"github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/git"
	"github.com/thomas-vilte/releasemate/internal/i18n"
	"github.com/thomas-vilte/releasemate/internal/logger"
	notesengine "github.com/thomas-vilte/releasemate/internal/notes"
	"github.com/thomas-vilte/releasemate/internal/ui"
	"github.com/thomas-vilte/releasemate/internal/vcs"
	"github.com/thomas-vilte/releasemate/internal/vcs/github"
	"github.com/thomas-vilte/releasemate/internal/version"
	"github.com/urfave/cli/v3"
)

// GenerateCommandFactory wires the root command: flags, the git and code
// host services, and the note-synthesis engine.
type GenerateCommandFactory struct {
	gitService *git.GitService
	cfg        *config.Config
}

func NewGenerateCommandFactory(gitService *git.GitService, cfg *config.Config) *GenerateCommandFactory {
	return &GenerateCommandFactory{
		gitService: gitService,
		cfg:        cfg,
	}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:        "releasemate",
		Usage:       t.GetMessage("app_usage", 0, nil),
		Description: t.GetMessage("app_description", 0, nil),
		Version:     version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "clipboard",
				Aliases: []string{"c"},
				Usage:   t.GetMessage("flag_clipboard", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "prs",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("flag_include_prs", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "raw-commits",
				Aliases: []string{"x"},
				Usage:   t.GetMessage("flag_raw_commits", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"X"},
				Usage:   t.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "terse",
				Aliases: []string{"T"},
				Usage:   t.GetMessage("flag_terse", 0, nil),
			},
			&cli.StringFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("flag_tag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "commit",
				Aliases: []string{"C"},
				Usage:   t.GetMessage("flag_commit", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return f.run(ctx, cmd, t)
		},
	}
}

func (f *GenerateCommandFactory) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations) error {
	logger.Initialize(cmd.Bool("debug"))

	if !f.gitService.IsGitRepo(ctx) {
		return errors.ErrNotInGitRepo
	}

	terse := cmd.Bool("terse")
	if !terse {
		f.reportWorkingState(ctx, t)
	}

	var opts []notesengine.Option
	if client := f.vcsClient(ctx); client != nil {
		opts = append(opts, notesengine.WithVCSClient(client))
	}
	engine := notesengine.NewService(f.gitService, t, opts...)

	genOpts := notesengine.GenerateOptions{
		Tag:    cmd.String("tag"),
		Commit: cmd.String("commit"),
		Render: notesengine.RenderOptions{
			Terse:          terse,
			IncludePRs:     cmd.Bool("prs"),
			ListRawCommits: cmd.Bool("raw-commits"),
		},
	}

	var out string
	generate := func() error {
		var err error
		out, err = engine.Generate(ctx, genOpts)
		return err
	}

	if terse {
		if err := generate(); err != nil {
			return err
		}
	} else {
		if err := ui.WithSpinner(t.GetMessage("spinner_generating", 0, nil), generate); err != nil {
			return err
		}
	}

	fmt.Print(out)

	if cmd.Bool("clipboard") && out != "" {
		if err := clipboard.Copy(ctx, out); err != nil {
			ui.PrintWarning(os.Stderr, t.GetMessage("clipboard_error", 0, map[string]interface{}{
				"Error": err,
			}))
		} else if !terse {
			ui.PrintSuccess(os.Stderr, t.GetMessage("clipboard_copied", 0, nil))
		}
	}

	return nil
}

// reportWorkingState refreshes tags and warns about anything that makes
// the range misleading. Warnings go to stderr and never stop the run.
func (f *GenerateCommandFactory) reportWorkingState(ctx context.Context, t *i18n.Translations) {
	if err := f.gitService.FetchTags(ctx); err != nil {
		logger.Warn(ctx, "could not refresh tags from origin", "error", err)
	}

	if f.gitService.HasLocalChanges(ctx) {
		ui.PrintWarning(os.Stderr, t.GetMessage("warn_dirty_worktree", 0, nil))
	}

	branch, err := f.gitService.GetCurrentBranch(ctx)
	if err == nil && branch != "" && branch != f.cfg.DefaultBranch {
		ui.PrintWarning(os.Stderr, t.GetMessage("warn_not_default_branch", 0, map[string]interface{}{
			"Branch":  branch,
			"Default": f.cfg.DefaultBranch,
		}))
	}
}

// vcsClient builds a GitHub client when a token is available and the
// origin remote points at GitHub. Without one the engine falls back to
// local PR resolution only.
func (f *GenerateCommandFactory) vcsClient(ctx context.Context) vcs.VCSClient {
	token := f.cfg.Token()
	if token == "" {
		logger.Debug(ctx, "no GitHub token configured, PR search disabled")
		return nil
	}

	owner, repo, provider, err := f.gitService.GetRepoInfo(ctx)
	if err != nil {
		logger.Warn(ctx, "could not determine repository from origin, PR search disabled", "error", err)
		return nil
	}
	if provider != "github" {
		logger.Debug(ctx, "origin is not a GitHub remote, PR search disabled", "provider", provider)
		return nil
	}

	return github.NewGitHubClient(owner, repo, token)
}
