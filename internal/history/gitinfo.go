package history

import (
	"github.com/go-git/go-git/v5"
)

// SourceCommit returns the HEAD commit hash of the source directory, or an
// empty string when the directory is not a git repository. Undocumented
// working trees are normal, so errors are swallowed.
func SourceCommit(sourceDir string) string {
	repo, err := git.PlainOpenWithOptions(sourceDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
