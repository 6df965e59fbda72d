// Package github reads issue submissions through the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Runner executes a gh command and returns its stdout.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Client fetches issues for the repository in Dir.
type Client struct {
	Dir string
	Run Runner
}

func NewClient(dir string) *Client {
	return &Client{Dir: dir, Run: runGH}
}

// Issue is the subset of `gh issue view --json` the tool reads.
type Issue struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	URL    string  `json:"url"`
	Labels []Label `json:"labels"`
}

type Label struct {
	Name string `json:"name"`
}

// HasLabel reports whether the issue carries label name.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// ViewIssue returns issue number from the current repository.
func (c *Client) ViewIssue(ctx context.Context, number int) (*Issue, error) {
	if number <= 0 {
		return nil, fmt.Errorf("invalid issue number: %d", number)
	}

	out, err := c.Run(ctx, c.Dir, "issue", "view", fmt.Sprintf("%d", number), "--json", "number,title,body,url,labels")
	if err != nil {
		return nil, fmt.Errorf("failed to view issue %d: %w", number, err)
	}

	var issue Issue
	if err := json.Unmarshal(out, &issue); err != nil {
		return nil, fmt.Errorf("failed to decode issue %d: %w", number, err)
	}
	return &issue, nil
}

func runGH(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s", err, string(ee.Stderr))
		}
		return nil, err
	}
	return output, nil
}
