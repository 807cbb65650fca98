package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion      = "unknown"
	developmentVersion  = "(devel)"
	gitDirectoryName    = ".git"
	gitExecutableName   = "git"
	gitDescribeArgument = "describe"
)

// GetApplicationVersion determines the application version. It checks Go build
// info first and falls back to git describe when running from a source checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, repositoryLookupError := findGitDirectory(".")
	if repositoryLookupError == nil && repositoryDirectory != "" {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, gitDescribeArgument, "--tags", "--long", "--dirty")
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}

	return unknownVersion
}

// findGitDirectory searches upward from the starting directory for a directory
// containing a .git folder and returns that directory.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", absolutePathError
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, gitDirectoryName)
		fileInformation, statError := os.Stat(gitPath)
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", os.ErrNotExist
		}
		currentDirectory = parentDirectory
	}
}
