package notes

import (
	"context"
	"strings"

	"github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/i18n"
	"github.com/thomas-vilte/releasemate/internal/logger"
	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/vcs"
)

// GitService is the slice of the git layer the engine needs.
type GitService interface {
	CommitsSince(ctx context.Context, ref string) ([]models.Commit, error)
	GetLastTag(ctx context.Context) (string, error)
	ValidateTagExists(ctx context.Context, tag string) error
	ResolveCommit(ctx context.Context, hash string) (string, error)
}

// Service drives a single release-notes run: resolve the start point, read
// the commit range, resolve PRs, parse and consolidate dependency updates,
// render. A run holds no state across invocations.
type Service struct {
	git          GitService
	client       vcs.VCSClient
	parser       *Parser
	consolidator *Consolidator
	formatter    *Formatter
}

type Option func(*Service)

// WithVCSClient enables code-host lookups (PR search, PR body fetch).
// Without it the engine degrades to the local strategies.
func WithVCSClient(client vcs.VCSClient) Option {
	return func(s *Service) {
		s.client = client
	}
}

func NewService(git GitService, trans *i18n.Translations, opts ...Option) *Service {
	s := &Service{
		git:          git,
		parser:       NewParser(),
		consolidator: NewConsolidator(),
		formatter:    NewFormatter(trans),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateOptions select the start point and the output shape. Tag and
// Commit are mutually exclusive; when both are empty the latest tag is
// used.
type GenerateOptions struct {
	Tag    string
	Commit string
	Render RenderOptions
}

// Generate produces the release notes for the selected range. Only a
// failure to resolve the range itself is fatal; every per-commit problem
// degrades to a plainer entry.
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) (string, error) {
	log := logger.FromContext(ctx)

	ref, err := s.resolveStartPoint(ctx, opts)
	if err != nil {
		return "", err
	}

	commits, err := s.git.CommitsSince(ctx, ref)
	if err != nil {
		return "", err
	}
	log.Debug("commit range resolved", "ref", ref, "commits", len(commits))

	if len(commits) == 0 {
		log.Warn("no commits in range", "ref", ref)
		return s.formatter.Render(ref, nil, nil, nil, opts.Render), nil
	}

	resolver := NewResolver(commits, s.client)
	refs := resolver.ResolveAll(ctx, commits)

	var updates []models.DependencyUpdate
	var others []models.ReleaseNoteLine

	for i, commit := range commits {
		if isSnapshotCommit(commit) {
			log.Debug("skipping snapshot version commit", "hash", commit.Hash)
			continue
		}

		parsed := s.parser.Parse(commit, refs[i])
		if len(parsed) == 0 && s.parser.IsBotCommit(commit) {
			parsed = s.parseFromPRBody(ctx, commit, refs[i])
		}

		if len(parsed) > 0 {
			updates = append(updates, parsed...)
			continue
		}

		others = append(others, models.ReleaseNoteLine{
			Text:     s.formatter.CommitLine(commit, refs[i], opts.Render.IncludePRs),
			Position: commit.Position,
		})
	}

	entries := s.consolidator.Consolidate(updates)

	return s.formatter.Render(ref, entries, others, commits, opts.Render), nil
}

// isSnapshotCommit reports whether a commit is release-plugin bookkeeping
// ("setting new snapshot version"). Such commits carry no user-facing change
// and are kept out of the notes; they still appear in the raw listing.
func isSnapshotCommit(commit models.Commit) bool {
	return strings.Contains(strings.ToLower(commit.Subject), "setting new snapshot version")
}

// parseFromPRBody handles grouped bot commits whose message carries no
// per-package lines: the PR description usually does. Failures degrade to
// an ordinary entry.
func (s *Service) parseFromPRBody(ctx context.Context, commit models.Commit, pr *models.PRReference) []models.DependencyUpdate {
	if s.client == nil || pr == nil {
		return nil
	}

	data, err := s.client.GetPR(ctx, pr.Number)
	if err != nil {
		logger.FromContext(ctx).Debug("PR body fetch failed, keeping commit as ordinary entry",
			"pr", pr.Number,
			"error", err)
		return nil
	}
	return s.parser.ParseBody(commit, data.Body, pr)
}

func (s *Service) resolveStartPoint(ctx context.Context, opts GenerateOptions) (string, error) {
	if opts.Commit != "" {
		return s.git.ResolveCommit(ctx, opts.Commit)
	}

	if opts.Tag != "" {
		if err := s.git.ValidateTagExists(ctx, opts.Tag); err != nil {
			return "", err
		}
		return opts.Tag, nil
	}

	tag, err := s.git.GetLastTag(ctx)
	if err != nil {
		return "", err
	}
	if tag == "" {
		return "", errors.ErrNoTagsFound
	}
	return tag, nil
}
