package regex

import "regexp"

var (
	// Pull request reference patterns
	MergePullRequest = regexp.MustCompile(`^Merge pull request #(\d+) from (\S+)`)
	GitHubPR         = regexp.MustCompile(`\(#(\d+)\)`)

	// Dependency update patterns (dependabot subjects and bodies)
	BumpSubject     = regexp.MustCompile("^[Bb]umps? `?([^` ]+)`? from ([^ ]+) to ([^ )]+)")
	UpdatesBodyLine = regexp.MustCompile("(?i)^updates `([^`]+)` from ([^ ]+) to ([^ ,)]+)")
	BumpsLinkLine   = regexp.MustCompile(`^[Bb]umps? \[([^\]]+)\]\([^)]*\) from ([^ ]+) to ([^ ,)]+?)\.?(?:\s|$)`)

	// Version patterns
	LeadingMajor = regexp.MustCompile(`^v?(\d+)`)

	// Git and repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)
)
