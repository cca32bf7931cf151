package models

type (
	// PullRequestInfo is the normalized PR metadata fetched from GitHub.
	PullRequestInfo struct {
		Number int
		Title  string
		Body   string
		State  string
		Author string
		Head   BranchInfo
		Base   BranchInfo
	}

	// BranchInfo identifies one side of a PR: branch, commit and repository.
	BranchInfo struct {
		Ref  string
		SHA  string
		Repo RepoInfo
	}

	// RepoInfo carries only the owner login, not the full GitHub user object.
	RepoInfo struct {
		FullName string
		Name     string
		Owner    string
	}

	// PullRequestFile is one changed file entry, in API page order.
	PullRequestFile struct {
		Filename  string
		Status    string
		Additions int
		Deletions int
		Changes   int
	}

	// PullRequestDiff holds the unified diff. Size is the byte length of the
	// full diff; when Truncated, Content is a Size-exceeding diff cut to the
	// configured maximum number of bytes.
	PullRequestDiff struct {
		Content   string
		Size      int
		Truncated bool
	}

	// PRData is the final record handed to the template renderer.
	PRData struct {
		Number       int
		Title        string
		Author       string
		Body         string
		State        string
		Head         BranchInfo
		Base         BranchInfo
		ChangedFiles string
		Files        []PullRequestFile
		DiffFile     string
	}
)
