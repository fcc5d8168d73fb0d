package notes

import (
	"context"
	"strconv"
	"sync"

	"github.com/thomas-vilte/releasemate/internal/logger"
	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/regex"
	"github.com/thomas-vilte/releasemate/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// searchConcurrency bounds the fan-out of code-host searches so a large
// range does not blow through API rate limits.
const searchConcurrency = 4

// Resolver assigns a PR reference to commits through a three-tier strategy
// chain: subject pattern match, merge-commit scan, code-host search. The
// first strategy that succeeds wins.
type Resolver struct {
	client   vcs.VCSClient // nil disables the api-search strategy
	mergeMap map[string]int

	mu          sync.Mutex
	searchCache map[string][]int
}

// NewResolver scans the full commit range once to build the merge-commit
// map; the map and the search cache live for a single run.
func NewResolver(commits []models.Commit, client vcs.VCSClient) *Resolver {
	return &Resolver{
		client:      client,
		mergeMap:    buildMergeMap(commits),
		searchCache: make(map[string][]int),
	}
}

// buildMergeMap maps the second parent of every "Merge pull request #N
// from ..." commit (the tip of the merged branch) to N.
func buildMergeMap(commits []models.Commit) map[string]int {
	m := make(map[string]int)
	for _, commit := range commits {
		if !commit.IsMerge() {
			continue
		}
		match := regex.MergePullRequest.FindStringSubmatch(commit.Subject)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			m[commit.Parents[1]] = n
		}
	}
	return m
}

// Resolve runs the strategy chain for a single commit. A nil result means
// no PR was found, which is a valid state, never an error.
func (r *Resolver) Resolve(ctx context.Context, commit models.Commit) *models.PRReference {
	if ref := resolveFromSubject(commit); ref != nil {
		return ref
	}
	if n, ok := r.mergeMap[commit.Hash]; ok {
		return &models.PRReference{Number: n, Source: models.PRSourceMergeScan}
	}
	return r.resolveFromSearch(ctx, commit)
}

// ResolveAll resolves every commit of the range. The subject and merge-scan
// strategies run inline; commits that fall through to the code-host search
// are fanned out with bounded concurrency and reassembled by position, so
// concurrency is never observable in the output order.
func (r *Resolver) ResolveAll(ctx context.Context, commits []models.Commit) []*models.PRReference {
	refs := make([]*models.PRReference, len(commits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)

	for i, commit := range commits {
		if ref := resolveFromSubject(commit); ref != nil {
			refs[i] = ref
			continue
		}
		if n, ok := r.mergeMap[commit.Hash]; ok {
			refs[i] = &models.PRReference{Number: n, Source: models.PRSourceMergeScan}
			continue
		}
		if r.client == nil {
			continue
		}

		g.Go(func() error {
			refs[i] = r.resolveFromSearch(gctx, commit)
			return nil
		})
	}

	// Search failures degrade per commit, nothing to propagate.
	_ = g.Wait()

	return refs
}

func resolveFromSubject(commit models.Commit) *models.PRReference {
	match := regex.MergePullRequest.FindStringSubmatch(commit.Subject)
	if match == nil {
		match = regex.GitHubPR.FindStringSubmatch(commit.Subject)
	}
	if match == nil {
		return nil
	}

	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return nil
	}
	return &models.PRReference{Number: n, Source: models.PRSourceSubject}
}

// resolveFromSearch queries the code host for PRs containing the commit.
// Results (including misses) are cached per hash for the run, and any
// transport or auth failure downgrades to "no PR found".
func (r *Resolver) resolveFromSearch(ctx context.Context, commit models.Commit) *models.PRReference {
	if r.client == nil {
		return nil
	}

	r.mu.Lock()
	numbers, cached := r.searchCache[commit.Hash]
	r.mu.Unlock()

	if !cached {
		var err error
		numbers, err = r.client.SearchPRsByCommit(ctx, commit.Hash)
		if err != nil {
			logger.FromContext(ctx).Debug("PR search failed, continuing without PR",
				"sha", commit.Hash,
				"error", err)
			numbers = nil
		}

		r.mu.Lock()
		r.searchCache[commit.Hash] = numbers
		r.mu.Unlock()
	}

	if len(numbers) == 0 {
		return nil
	}
	return &models.PRReference{Number: numbers[0], Source: models.PRSourceAPISearch}
}
