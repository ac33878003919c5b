package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// Scrape defaults.
const (
	DefaultMaxNodes          = 10000
	DefaultPageSize          = 100
	DefaultCommentsPerIssue  = 25
	DefaultLabelsPerIssue    = 5
	DefaultRateCheckEvery    = 10
	DefaultRetryDelay        = 10 * time.Second
	DefaultMaxRetries        = 5
	DefaultRequestsPerSecond = 1.0
)

// Duration is a time.Duration that reads and writes as a TOML string ("10s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ScrapeSettings configures the GitHub scraper.
type ScrapeSettings struct {
	Owner             string   `toml:"owner"`
	Repo              string   `toml:"repo"`
	MaxNodes          int      `toml:"max_nodes"`
	PageSize          int      `toml:"page_size"`
	CommentsPerIssue  int      `toml:"comments_per_issue"`
	LabelsPerIssue    int      `toml:"labels_per_issue"`
	RateCheckEvery    int      `toml:"rate_check_every"`
	RetryDelay        Duration `toml:"retry_delay"`
	MaxRetries        int      `toml:"max_retries"`
	RequestsPerSecond float64  `toml:"requests_per_second"`

	// GraphQLURL overrides the API base URL for GitHub Enterprise.
	GraphQLURL string `toml:"graphql_url,omitempty"`
}

// DataSettings locates pipeline artefacts and the SQLite database.
type DataSettings struct {
	Dir string `toml:"dir"`

	// DBDir defaults to <config dir>/data when empty.
	DBDir string `toml:"db_dir,omitempty"`
}

// Settings is the full contents of config.toml.
type Settings struct {
	Clean  domain.CleanConfig `toml:"clean"`
	Scrape ScrapeSettings     `toml:"scrape"`
	Data   DataSettings       `toml:"data"`
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		Clean: domain.DefaultCleanConfig(),
		Scrape: ScrapeSettings{
			MaxNodes:          DefaultMaxNodes,
			PageSize:          DefaultPageSize,
			CommentsPerIssue:  DefaultCommentsPerIssue,
			LabelsPerIssue:    DefaultLabelsPerIssue,
			RateCheckEvery:    DefaultRateCheckEvery,
			RetryDelay:        Duration(DefaultRetryDelay),
			MaxRetries:        DefaultMaxRetries,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Data: DataSettings{Dir: "data"},
	}
}

// Validate checks values that would make a run misbehave.
func (s Settings) Validate() error {
	var errs []error
	if s.Clean.DropIfTooLong < 0 {
		errs = append(errs, errors.New("clean.drop_if_too_long must not be negative"))
	}
	if s.Scrape.MaxNodes <= 0 {
		errs = append(errs, errors.New("scrape.max_nodes must be positive"))
	}
	if s.Scrape.PageSize <= 0 || s.Scrape.PageSize > 100 {
		errs = append(errs, errors.New("scrape.page_size must be between 1 and 100"))
	}
	if s.Scrape.CommentsPerIssue < 0 || s.Scrape.CommentsPerIssue > 100 {
		errs = append(errs, errors.New("scrape.comments_per_issue must be between 0 and 100"))
	}
	if s.Scrape.LabelsPerIssue < 0 || s.Scrape.LabelsPerIssue > 100 {
		errs = append(errs, errors.New("scrape.labels_per_issue must be between 0 and 100"))
	}
	if s.Scrape.RetryDelay < 0 {
		errs = append(errs, errors.New("scrape.retry_delay must not be negative"))
	}
	if s.Scrape.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("scrape.requests_per_second must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// SettingsStore loads and saves Settings as TOML.
type SettingsStore struct {
	mu        sync.RWMutex
	configDir string
	filePath  string
	settings  Settings
}

// NewSettingsStore creates a store for <configDir>/config.toml.
// If configDir is empty, defaults to ~/.ghcorpus.
// A missing file yields DefaultSettings.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".ghcorpus")
	}
	return NewSettingsStoreAt(filepath.Join(configDir, "config.toml"))
}

// NewSettingsStoreAt creates a store for an explicit config file path.
func NewSettingsStoreAt(path string) (*SettingsStore, error) {
	s := &SettingsStore{
		configDir: filepath.Dir(path),
		filePath:  path,
		settings:  DefaultSettings(),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings in memory. Call Save to persist.
func (s *SettingsStore) Update(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Load reads the TOML file. Keys absent from the file keep their defaults.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = DefaultSettings()
			return nil
		}
		return err
	}

	loaded := DefaultSettings()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.settings = loaded
	return nil
}

// Save writes the settings to disk with restricted permissions.
func (s *SettingsStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := Marshal(s.settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Exists reports whether the config file is present on disk.
func (s *SettingsStore) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// DBDir returns the SQLite directory, resolving the default.
func (s *SettingsStore) DBDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings.Data.DBDir != "" {
		return s.settings.Data.DBDir
	}
	return filepath.Join(s.configDir, "data")
}

// Marshal renders settings as TOML.
func Marshal(settings Settings) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(settings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
