package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	log "github.com/sirupsen/logrus"
)

// isGitURL checks if the root argument looks like a Git repository URL.
func isGitURL(input string) bool {
	if strings.HasPrefix(input, "git@") {
		return true
	}
	return strings.HasSuffix(input, ".git") && !isExistingPath(input)
}

func isExistingPath(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// cloneGitRepo shallow-clones url into a temporary directory and returns its
// path. The caller removes the directory.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "mytree-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	var progress io.Writer
	if log.IsLevelEnabled(log.DebugLevel) {
		progress = os.Stderr
	}
	log.Debugf("cloning %s into %s", url, tempDir)

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}
	return tempDir, nil
}
