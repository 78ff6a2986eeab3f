//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RepoOption is a function that configures repository creation
type RepoOption func(*repoOptions)

type repoOptions struct {
	withCommit bool
	files      map[string]string // filename -> contents
}

// WithCommit creates the repository with an initial commit
func WithCommit(commit bool) RepoOption {
	return func(opts *repoOptions) {
		opts.withCommit = commit
	}
}

// WithFiles creates the repository with specific files and contents
func WithFiles(files map[string]string) RepoOption {
	return func(opts *repoOptions) {
		opts.files = files
	}
}

// CreateTestWorkspace creates a temporary directory for the test repository
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateTestRepo creates a Git repository in the workspace. Files are
// tracked so git grep can see them.
func (tf *TUITestFramework) CreateTestRepo(name string, options ...RepoOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	repoPath := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return "", err
	}

	if err := tf.runGitCommand(repoPath, "init"); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "checkout", "-b", "main"); err != nil {
		return "", err
	}

	opts := &repoOptions{withCommit: true}
	for _, opt := range options {
		opt(opts)
	}

	readme := fmt.Sprintf("# %s\n\nTest repository for gitreplace testing.\n", name)
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte(readme), 0644); err != nil {
		return "", err
	}
	for filename, content := range opts.files {
		filePath := filepath.Join(repoPath, filename)
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return "", err
		}
	}

	if err := tf.runGitCommand(repoPath, "add", "."); err != nil {
		return "", err
	}
	if opts.withCommit {
		if err := tf.runGitCommand(repoPath, "commit", "-m", "Initial commit"); err != nil {
			return "", err
		}
	}

	return repoPath, nil
}

// ReadRepoFile returns the current contents of a file in the repository
func (tf *TUITestFramework) ReadRepoFile(repoPath, name string) string {
	tf.t.Helper()
	data, err := os.ReadFile(filepath.Join(repoPath, name))
	if err != nil {
		tf.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func (tf *TUITestFramework) runGitCommand(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Set deterministic git environment
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=gitreplace Test",
		"GIT_AUTHOR_EMAIL=test@gitreplace.test",
		"GIT_COMMITTER_NAME=gitreplace Test",
		"GIT_COMMITTER_EMAIL=test@gitreplace.test",
		"GIT_CONFIG_GLOBAL=/dev/null", // ignore user ~/.gitconfig
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v failed: %v; out=%s", args, err, out)
	}
	return nil
}
