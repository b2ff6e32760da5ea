package config

import (
	"errors"
	"os"
	"strconv"
	"unicode"

	"sci-translator/internal/charset"
	"sci-translator/internal/errs"
	"sci-translator/internal/textutil"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultProjectFile is read from the working directory when --config is
// not given.
const DefaultProjectFile = "sci-translator.yaml"

type Config struct {
	WorkerCount      int
	SourceEncoding   string
	TargetEncoding   string
	VocabDB          string
	VocabDatabaseURL string
	TargetScript     string
	SplitLines       int
	Delimiter        string
	GameName         string
	SourceLanguage   string
	TargetLanguage   string
}

// ProjectConfig holds per-title defaults stored in sci-translator.yaml.
type ProjectConfig struct {
	Game      GameConfig   `yaml:"game"`
	Corpus    CorpusConfig `yaml:"corpus"`
	Workers   int          `yaml:"workers,omitempty"`
	VocabDB   string       `yaml:"vocab_db,omitempty"`
	SplitSize int          `yaml:"split_lines,omitempty"`
}

type GameConfig struct {
	Name           string `yaml:"name"`
	SourceLanguage string `yaml:"source_language,omitempty"`
	TargetLanguage string `yaml:"target_language,omitempty"`
	TargetScript   string `yaml:"target_script,omitempty"`
}

type CorpusConfig struct {
	Delimiter      string `yaml:"delimiter,omitempty"`
	SourceEncoding string `yaml:"source_encoding,omitempty"`
	TargetEncoding string `yaml:"target_encoding,omitempty"`
}

// Load reads .env and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		WorkerCount:      getEnvInt("WORKER_COUNT", 4),
		SourceEncoding:   getEnv("SOURCE_ENCODING", charset.DefaultSource),
		TargetEncoding:   getEnv("TARGET_ENCODING", charset.DefaultTarget),
		VocabDB:          getEnv("VOCAB_DB", "vocabulary.db"),
		VocabDatabaseURL: getEnv("VOCAB_DATABASE_URL", ""),
		TargetScript:     getEnv("TARGET_SCRIPT", "hebrew"),
		SplitLines:       getEnvInt("SPLIT_LINES", 250),
		Delimiter:        "braces",
		SourceLanguage:   "en",
		TargetLanguage:   "he",
	}
}

// LoadProject reads a project file. A missing file yields a zero config.
func LoadProject(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ProjectConfig{}, nil
		}
		return nil, errs.IO("read config", path, err)
	}

	var pc ProjectConfig
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, errs.Validation(path, 0, "invalid project config: %v", err)
	}
	return &pc, nil
}

// SaveProject writes pc to path.
func SaveProject(path string, pc *ProjectConfig) error {
	data, err := yaml.Marshal(pc)
	if err != nil {
		return err
	}
	return errs.IO("write config", path, os.WriteFile(path, data, 0644))
}

// Apply layers the non-empty project values over c.
func (c *Config) Apply(pc *ProjectConfig) {
	setString(&c.GameName, pc.Game.Name)
	setString(&c.SourceLanguage, pc.Game.SourceLanguage)
	setString(&c.TargetLanguage, pc.Game.TargetLanguage)
	setString(&c.TargetScript, pc.Game.TargetScript)
	setString(&c.Delimiter, pc.Corpus.Delimiter)
	setString(&c.SourceEncoding, pc.Corpus.SourceEncoding)
	setString(&c.TargetEncoding, pc.Corpus.TargetEncoding)
	setString(&c.VocabDB, pc.VocabDB)
	if pc.Workers > 0 {
		c.WorkerCount = pc.Workers
	}
	if pc.SplitSize > 0 {
		c.SplitLines = pc.SplitSize
	}
}

// Validate checks the values that name code pages and scripts.
func (c *Config) Validate() error {
	for _, name := range []string{c.SourceEncoding, c.TargetEncoding} {
		if _, err := charset.Lookup(name); err != nil {
			return errs.Validation("", 0, "%v", err)
		}
	}
	if _, err := c.Script(); err != nil {
		return err
	}
	if c.WorkerCount < 1 {
		return errs.Validation("", 0, "worker count must be positive, got %d", c.WorkerCount)
	}
	return nil
}

// Script returns the Unicode table of TargetScript.
func (c *Config) Script() (*unicode.RangeTable, error) {
	table, ok := textutil.Scripts[c.TargetScript]
	if !ok {
		return nil, errs.Validation("", 0, "unknown target script %q", c.TargetScript)
	}
	return table, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-numeric setting")
		return fallback
	}
	return n
}
