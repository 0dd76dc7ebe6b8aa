// =============================================================================
// Asset Import - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the per-template
// import configurations.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): directories, logging, lookup source
//   2. Template Configs (configs/*.yaml): one file per import template
//   3. .env: secrets such as DATABASE_URL, loaded into the environment
//
// When configs_dir holds no template files, the four built-in templates
// (office, phone, router, tablet) are used.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ENTITIES AND COMMIT MODES
// =============================================================================

// Entity names the kind of asset an import template carries.
type Entity string

const (
	EntityOffice Entity = "office"
	EntityPhone  Entity = "phone"
	EntityRouter Entity = "router"
	EntityTablet Entity = "tablet"
)

// Entities lists every supported entity.
var Entities = []Entity{EntityOffice, EntityPhone, EntityRouter, EntityTablet}

// Valid reports whether e is a supported entity.
func (e Entity) Valid() bool { return slices.Contains(Entities, e) }

// CommitMode decides what happens to a batch that contains invalid rows.
type CommitMode string

const (
	// CommitAllOrNothing commits nothing if any row failed.
	CommitAllOrNothing CommitMode = "all_or_nothing"

	// CommitSkipInvalid commits the accepted rows and counts the rest.
	CommitSkipInvalid CommitMode = "skip_invalid"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for .xlsx and .csv import files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the import reports.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after a committed batch.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ConfigsDir holds the template configurations.
	// Default: "./configs"
	ConfigsDir string `yaml:"configs_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportFormat is "xlsx" or "csv".
	// Default: "xlsx"
	ReportFormat string `yaml:"report_format"`

	// OutputNameFormat defines the report file name.
	// Placeholders:
	//   {entity}    - Template entity (office, phone, ...)
	//   {original}  - Input file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - The batch ID
	// The report extension is appended.
	// Default: "{entity}_{original}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed at once. Rows
	// within one file are always processed in order.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// Lookup selects where persisted keys come from.
	Lookup LookupConfig `yaml:"lookup"`
}

// LookupConfig selects the lookup source.
type LookupConfig struct {
	// Driver is "file", "postgres" or "redis".
	// Default: "file"
	Driver string `yaml:"driver"`

	// File is the YAML lookup file for the file driver. Empty means no
	// persisted keys and no reference checks.
	File string `yaml:"file"`

	// URLEnv names the environment variable holding the connection URL.
	// Default: "DATABASE_URL" for postgres, "REDIS_URL" for redis
	URLEnv string `yaml:"url_env"`

	// KeyPrefix namespaces the Redis sets.
	// Default: "asset-import"
	KeyPrefix string `yaml:"key_prefix"`
}

// URL returns the connection URL from the environment.
func (l LookupConfig) URL() string {
	return os.Getenv(l.URLEnv)
}

// =============================================================================
// TEMPLATE CONFIGURATION STRUCTURE
// =============================================================================

// TemplateConfig describes one import template.
type TemplateConfig struct {
	// Name is used in logs and report names.
	Name string `yaml:"name"`

	// Entity is the asset kind: office, phone, router, tablet.
	Entity Entity `yaml:"entity"`

	// FileMatchingPatterns are glob patterns matched against input file
	// names. The first template with a matching pattern is used.
	// Examples:
	//   - "事業所*.xlsx"
	//   - "phones_*.csv"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// Sheet is the workbook sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// HeaderRow is the zero-based row holding the column labels.
	// Default: 0
	HeaderRow int `yaml:"header_row"`

	// DataStartRow is the zero-based row where data begins. Error messages
	// number rows as data index + DataStartRow + 1.
	// Default: 2 for office (header + hint row), 1 for devices
	DataStartRow int `yaml:"data_start_row"`

	// CommitMode is all_or_nothing or skip_invalid.
	// Default: all_or_nothing for office, skip_invalid for devices
	CommitMode CommitMode `yaml:"commit_mode"`

	// CSVSettings apply when the input is a .csv file.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for parsing CSV input.
type CSVSettings struct {
	// Delimiter separates fields.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is "UTF-8" or "Shift_JIS".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// Matches reports whether fileName matches one of the template's patterns.
func (t *TemplateConfig) Matches(fileName string) bool {
	base := filepath.Base(fileName)
	for _, p := range t.FileMatchingPatterns {
		if ok, err := filepath.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; existing variables are not overridden.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. A missing file
//     yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ConfigsDir == "" {
		config.ConfigsDir = "./configs"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.ReportFormat == "" {
		config.ReportFormat = "xlsx"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{entity}_{original}_{timestamp}"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.Lookup.Driver == "" {
		config.Lookup.Driver = "file"
	}
	if config.Lookup.URLEnv == "" {
		switch config.Lookup.Driver {
		case "postgres":
			config.Lookup.URLEnv = "DATABASE_URL"
		case "redis":
			config.Lookup.URLEnv = "REDIS_URL"
		}
	}
}

// validateMainConfig checks enumerated options and creates missing
// directories.
func validateMainConfig(config *MainConfig) error {
	switch config.ReportFormat {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("%w: report_format %q", ErrInvalidConfig, config.ReportFormat)
	}
	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, config.LogFormat)
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.InputArchiveDir,
		config.ConfigsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// LoadTemplateConfigs loads every template configuration in configsDir,
// sorted by file name. An empty directory yields DefaultTemplates().
func LoadTemplateConfigs(configsDir string) ([]*TemplateConfig, error) {
	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)

	if len(files) == 0 {
		return DefaultTemplates(), nil
	}

	configs := make([]*TemplateConfig, 0, len(files))
	for _, file := range files {
		config, err := loadTemplateConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// loadTemplateConfig loads a single template configuration file.
func loadTemplateConfig(filePath string) (*TemplateConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config TemplateConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	if config.Name == "" {
		config.Name = filepath.Base(filePath)
	}
	ApplyTemplateDefaults(&config)

	if err := ValidateTemplate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ApplyTemplateDefaults fills the per-entity layout and commit defaults.
func ApplyTemplateDefaults(config *TemplateConfig) {
	if config.DataStartRow == 0 {
		if config.Entity == EntityOffice {
			config.DataStartRow = config.HeaderRow + 2
		} else {
			config.DataStartRow = config.HeaderRow + 1
		}
	}
	if config.CommitMode == "" {
		if config.Entity == EntityOffice {
			config.CommitMode = CommitAllOrNothing
		} else {
			config.CommitMode = CommitSkipInvalid
		}
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
}

// ValidateTemplate checks a template after defaults are applied.
func ValidateTemplate(config *TemplateConfig) error {
	if !config.Entity.Valid() {
		return fmt.Errorf("%w: template %s: unknown entity %q", ErrInvalidConfig, config.Name, config.Entity)
	}
	if config.HeaderRow < 0 || config.DataStartRow <= config.HeaderRow {
		return fmt.Errorf("%w: template %s: data_start_row %d must come after header_row %d",
			ErrInvalidConfig, config.Name, config.DataStartRow, config.HeaderRow)
	}
	switch config.CommitMode {
	case CommitAllOrNothing, CommitSkipInvalid:
	default:
		return fmt.Errorf("%w: template %s: unknown commit_mode %q", ErrInvalidConfig, config.Name, config.CommitMode)
	}
	for _, p := range config.FileMatchingPatterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: template %s: bad pattern %q", ErrInvalidConfig, config.Name, p)
		}
	}
	return nil
}

// DefaultTemplates returns the built-in templates, matched on the usual
// file name prefixes.
func DefaultTemplates() []*TemplateConfig {
	defaults := []*TemplateConfig{
		{Name: "office", Entity: EntityOffice, FileMatchingPatterns: []string{"office*", "事業所*", "住所*"}},
		{Name: "phone", Entity: EntityPhone, FileMatchingPatterns: []string{"phone*", "携帯*", "電話*"}},
		{Name: "router", Entity: EntityRouter, FileMatchingPatterns: []string{"router*", "ルーター*"}},
		{Name: "tablet", Entity: EntityTablet, FileMatchingPatterns: []string{"tablet*", "タブレット*"}},
	}
	for _, d := range defaults {
		ApplyTemplateDefaults(d)
	}
	return defaults
}

// DefaultTemplate returns the built-in template for entity.
func DefaultTemplate(entity Entity) (*TemplateConfig, error) {
	for _, t := range DefaultTemplates() {
		if t.Entity == entity {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown entity %q", ErrInvalidConfig, entity)
}

// FindTemplate returns the first template whose patterns match fileName.
func FindTemplate(templates []*TemplateConfig, fileName string) (*TemplateConfig, bool) {
	for _, t := range templates {
		if t.Matches(fileName) {
			return t, true
		}
	}
	return nil, false
}
