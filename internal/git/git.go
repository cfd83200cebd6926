// Package git reports which files changed relative to a base ref, so a run
// can format only what a commit touches.
package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ChangedFiles runs git diff against baseRef and returns the paths of files
// that still exist (deleted files are filtered out by git itself).
func ChangedFiles(baseRef string) ([]string, error) {
	if baseRef == "" {
		baseRef = "HEAD"
	}
	cmd := exec.Command("git", "diff", "--name-only", "--diff-filter=d", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}
	return parseNameOnly(output), nil
}

func parseNameOnly(output []byte) []string {
	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
