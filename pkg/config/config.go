// Package config holds the settings of a documentation run and loads them
// from YAML or HCL files.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-propdoc/internal/logging"
	"github.com/goliatone/go-propdoc/pkg/render/template/gotmpl"
	"github.com/goliatone/go-propdoc/pkg/render/template/pongo"
)

// Defaults for a run without any configuration.
const (
	DefaultJSONFileName   = "target/classes/META-INF/spring-configuration-metadata.json"
	DefaultOutputFileName = "CONFIGURATION.md"
	DefaultTemplate       = "configuration.md"
	DefaultEngine         = pongo.EngineName
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config is the complete set of options for one run.
type Config struct {
	// JSONFileName is the path of the metadata file.
	JSONFileName string `yaml:"jsonFileName"`
	// OutputFileName is the path of the generated document.
	OutputFileName string `yaml:"outputFileName"`
	// FailIfNoMetadataFileFound turns a missing metadata file into an error
	// instead of a skipped run.
	FailIfNoMetadataFileFound bool `yaml:"failIfNoMetadataFileFound"`
	// Template is the logical template name; engines add their extension.
	Template string `yaml:"template"`
	// TemplateDir optionally points at a directory of templates that take
	// precedence over the embedded ones.
	TemplateDir string `yaml:"templateDir,omitempty"`
	// Engine selects the template engine (pongo2 or gotemplate).
	Engine string `yaml:"engine"`
	// SanitizeDescriptions strips unsafe markup from descriptions.
	SanitizeDescriptions bool `yaml:"sanitizeDescriptions"`
	LogLevel             string `yaml:"logLevel"`
	LogFormat            string `yaml:"logFormat"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		JSONFileName:   DefaultJSONFileName,
		OutputFileName: DefaultOutputFileName,
		Template:       DefaultTemplate,
		Engine:         DefaultEngine,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{pongo.EngineName, gotmpl.EngineName}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JSONFileName) == "" {
		errs = append(errs, errors.New("jsonFileName must not be empty"))
	}
	if strings.TrimSpace(c.OutputFileName) == "" {
		errs = append(errs, errors.New("outputFileName must not be empty"))
	}
	if strings.TrimSpace(c.Template) == "" {
		errs = append(errs, errors.New("template must not be empty"))
	}
	if !slices.Contains(Engines(), c.Engine) {
		errs = append(errs, fmt.Errorf("engine %q is not one of %s", c.Engine, strings.Join(Engines(), ", ")))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel %q is not one of %s", c.LogLevel, strings.Join(logging.Levels, ", ")))
	}
	if !slices.Contains(logging.Formats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("logFormat %q is not one of %s", c.LogFormat, strings.Join(logging.Formats, ", ")))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}
