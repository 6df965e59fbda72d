package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when present and no --config flag is given.
const DefaultPath = "slrledger.yaml"

type Config struct {
	Root         string        `yaml:"root"`
	Paths        PathsConfig   `yaml:"paths"`
	Markers      MarkersConfig `yaml:"markers"`
	AbsentMarker string        `yaml:"absent_marker"`
	Storage      StorageConfig `yaml:"storage"`
	Form         FormConfig    `yaml:"form"`
	Notify       NotifyConfig  `yaml:"notify"`
}

// PathsConfig names every persisted artifact relative to the storage root.
type PathsConfig struct {
	VocabularyDir string `yaml:"vocabulary_dir"`
	Ledger        string `yaml:"ledger"`
	Readme        string `yaml:"readme"`
	Form          string `yaml:"form"`
	IssueBodyFile string `yaml:"issue_body_file"`
}

type MarkersConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
	Region  string `yaml:"region"`
}

type FormConfig struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Title       string   `yaml:"title"`
	Labels      []string `yaml:"labels"`
}

type NotifyConfig struct {
	Slack SlackConfig `yaml:"slack"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Paths: PathsConfig{
			VocabularyDir: "config",
			Ledger:        "slr.csv",
			Readme:        "README.md",
			Form:          ".github/ISSUE_TEMPLATE/add_slr_entry.yml",
			IssueBodyFile: "issue_body.txt",
		},
		Markers: MarkersConfig{
			Start: "<!-- SLR_TABLE_START -->",
			End:   "<!-- SLR_TABLE_END -->",
		},
		AbsentMarker: "",
		Storage: StorageConfig{
			Backend: BackendLocal,
			Region:  "us-east-1",
		},
		Form: FormConfig{
			Name:        "Add SLR Entry",
			Description: "Submit a new study for inclusion in the SLR",
			Title:       "[SLR Entry] ",
			Labels:      []string{"slr-entry"},
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Resolve loads path if given. With no path, DefaultPath is used when it
// exists and defaults otherwise.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return LoadConfig(DefaultPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return DefaultConfig(), nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendLocal:
	case BackendS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %s", c.Storage.Backend)
	}

	if c.Markers.Start == "" || c.Markers.End == "" {
		return fmt.Errorf("markers.start and markers.end are required")
	}
	if c.Markers.Start == c.Markers.End {
		return fmt.Errorf("markers.start and markers.end must differ")
	}

	if c.Paths.VocabularyDir == "" || c.Paths.Ledger == "" || c.Paths.Readme == "" || c.Paths.Form == "" {
		return fmt.Errorf("paths.vocabulary_dir, paths.ledger, paths.readme and paths.form are required")
	}

	if c.Form.Name == "" || c.Form.Description == "" {
		return fmt.Errorf("form.name and form.description are required")
	}

	return nil
}
