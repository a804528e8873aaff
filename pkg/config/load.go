package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// EnvVar names the configuration file when no explicit path is given.
const EnvVar = "PROPDOC_CONFIG"

// DefaultFileNames are looked up in the working directory, in order, when
// neither an explicit path nor EnvVar is set.
var DefaultFileNames = []string{"propdoc.yaml", "propdoc.yml", "propdoc.hcl"}

// fileConfig mirrors Config with optional fields so only keys present in a
// file override defaults.
type fileConfig struct {
	JSONFileName              *string `yaml:"jsonFileName" hcl:"json_file_name,optional"`
	OutputFileName            *string `yaml:"outputFileName" hcl:"output_file_name,optional"`
	FailIfNoMetadataFileFound *bool   `yaml:"failIfNoMetadataFileFound" hcl:"fail_if_no_metadata_file_found,optional"`
	Template                  *string `yaml:"template" hcl:"template,optional"`
	TemplateDir               *string `yaml:"templateDir" hcl:"template_dir,optional"`
	Engine                    *string `yaml:"engine" hcl:"engine,optional"`
	SanitizeDescriptions      *bool   `yaml:"sanitizeDescriptions" hcl:"sanitize_descriptions,optional"`
	LogLevel                  *string `yaml:"logLevel" hcl:"log_level,optional"`
	LogFormat                 *string `yaml:"logFormat" hcl:"log_format,optional"`
}

// Locate returns the configuration file to use: explicit when set, then the
// EnvVar value, then the first DefaultFileNames entry present in dir. An
// empty result means no file.
func Locate(explicit, dir string) string {
	if path := strings.TrimSpace(explicit); path != "" {
		return path
	}
	if path := strings.TrimSpace(os.Getenv(EnvVar)); path != "" {
		return path
	}
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load returns Default overlaid with the file at path. An empty path yields
// the defaults. Relative paths inside the file resolve against the file's
// directory.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: file %s not found: %w", path, err)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	overlay, err := decode(path, data)
	if err != nil {
		return Config{}, err
	}
	overlay.resolvePaths(filepath.Dir(path))
	overlay.apply(&cfg)
	return cfg, nil
}

func decode(path string, data []byte) (fileConfig, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	case ".hcl":
		return decodeHCL(path, data)
	default:
		return fileConfig{}, fmt.Errorf("config: unsupported file extension %q (use .yaml, .yml or .hcl)", ext)
	}
}

func decodeYAML(path string, data []byte) (fileConfig, error) {
	var out fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("config: decode YAML %s: %w", path, err)
	}
	return out, nil
}

func decodeHCL(path string, data []byte) (fileConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return fileConfig{}, fmt.Errorf("config: parse HCL %s: %s", path, diags.Error())
	}

	var out fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &out); diags.HasErrors() {
		return fileConfig{}, fmt.Errorf("config: decode HCL %s: %s", path, diags.Error())
	}
	return out, nil
}

func (f *fileConfig) resolvePaths(base string) {
	for _, p := range []*string{f.JSONFileName, f.OutputFileName, f.TemplateDir} {
		if p == nil || *p == "" || filepath.IsAbs(*p) {
			continue
		}
		*p = filepath.Join(base, *p)
	}
}

func (f fileConfig) apply(cfg *Config) {
	setString(&cfg.JSONFileName, f.JSONFileName)
	setString(&cfg.OutputFileName, f.OutputFileName)
	setBool(&cfg.FailIfNoMetadataFileFound, f.FailIfNoMetadataFileFound)
	setString(&cfg.Template, f.Template)
	setString(&cfg.TemplateDir, f.TemplateDir)
	setString(&cfg.Engine, f.Engine)
	setBool(&cfg.SanitizeDescriptions, f.SanitizeDescriptions)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.LogFormat, f.LogFormat)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
