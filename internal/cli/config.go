package cli

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/generator"
	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/utils"
)

// DefaultConfigFile is looked up in the working directory when no -config flag is given
const DefaultConfigFile = "autoimpl.yaml"

// DefaultOutputDir receives generated files unless configured otherwise
const DefaultOutputDir = "Generated"

// MarkerConfig names the marker attribute and the namespace it is emitted into
type MarkerConfig struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
}

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for C# sources.
	// A trailing /... scans recursively.
	Directories []string `yaml:"directories"`

	// Strategy is one of named, qualified or inherited
	Strategy string `yaml:"strategy"`

	// Output is the directory generated files are written to
	Output string `yaml:"output"`

	Marker MarkerConfig `yaml:"marker"`

	// Include and Exclude are doublestar patterns relative to each scanned directory
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// Concurrency bounds the targets transformed in parallel; 0 uses GOMAXPROCS
	Concurrency int `yaml:"concurrency"`

	// CacheSize bounds the parse and pass caches of the session
	CacheSize int `yaml:"cacheSize"`

	// DryRun reports what would be written without touching the output directory
	DryRun bool `yaml:"dryRun"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when neither flags nor a file say otherwise
func DefaultConfig() Config {
	marker := annotations.DefaultMarker()
	return Config{
		Strategy: models.StrategyNamed.String(),
		Output:   DefaultOutputDir,
		Marker:   MarkerConfig{Name: marker.Name, Namespace: marker.Namespace},
		Include:  utils.DefaultSourcePatterns(),
		Exclude:  utils.DefaultExcludePatterns(),
	}
}

// LoadConfigFile decodes a YAML file over base. Keys absent from the file keep
// the value they have in base; unknown keys are rejected.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.WrapFileSystemError("read", path, err)
	}
	return DecodeConfig(data, base)
}

// DecodeConfig decodes YAML content over base
func DecodeConfig(data []byte, base Config) (Config, error) {
	var file Config
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
		return base, errors.WrapConfigurationError("file", "decode", err).
			WithSuggestion("Check the YAML syntax of " + DefaultConfigFile).
			WithSuggestion("Supported keys: directories, strategy, output, marker, include, exclude, concurrency, cacheSize, dryRun, verbose")
	}
	return base.Merge(file), nil
}

// Merge returns c with every non-zero field of other applied over it
func (c Config) Merge(other Config) Config {
	if len(other.Directories) > 0 {
		c.Directories = other.Directories
	}
	if other.Strategy != "" {
		c.Strategy = other.Strategy
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Marker.Name != "" {
		c.Marker.Name = other.Marker.Name
	}
	if other.Marker.Namespace != "" {
		c.Marker.Namespace = other.Marker.Namespace
	}
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.Concurrency != 0 {
		c.Concurrency = other.Concurrency
	}
	if other.CacheSize != 0 {
		c.CacheSize = other.CacheSize
	}
	c.DryRun = c.DryRun || other.DryRun
	c.Verbose = c.Verbose || other.Verbose
	return c
}

// Validate checks every field and returns the first problem as a ConfigurationError
func (c Config) Validate() error {
	checks := []struct {
		field string
		err   error
	}{
		{"strategy", utils.IsOneOf("strategy", "named", "qualified", "inherited")(c.Strategy)},
		{"output", utils.NotEmpty("output")(c.Output)},
		{"marker.name", utils.IsValidIdentifier("marker.name")(c.Marker.Name)},
		{"marker.namespace", utils.IsValidNamespace("marker.namespace")(c.Marker.Namespace)},
		{"include", utils.ValidateEach("include", utils.IsValidGlob("pattern"))(c.Include)},
		{"exclude", utils.ValidateEach("exclude", utils.IsValidGlob("pattern"))(c.Exclude)},
		{"concurrency", utils.Custom("concurrency", "cannot be negative", func(n int) bool { return n >= 0 })(c.Concurrency)},
		{"cacheSize", utils.Custom("cacheSize", "cannot be negative", func(n int) bool { return n >= 0 })(c.CacheSize)},
	}

	for _, check := range checks {
		if check.err == nil {
			continue
		}
		return errors.WrapConfigurationError(check.field, "validate", check.err).
			WithContext("field", check.field).
			WithSuggestion(suggestionFor(check.field))
	}

	if len(c.Include) == 0 {
		return errors.ConfigurationError("include", "at least one include pattern is required").
			WithSuggestion("Use '**/*.cs' to select every C# file")
	}
	return nil
}

// GeneratorOptions converts the configuration into pass options
func (c Config) GeneratorOptions() (generator.Options, error) {
	strategy, err := models.ParseStrategy(c.Strategy)
	if err != nil {
		return generator.Options{}, errors.WrapConfigurationError("strategy", "parse", err)
	}

	opts := generator.DefaultOptions()
	opts.Strategy = strategy
	opts.Marker = annotations.Marker{Name: c.Marker.Name, Namespace: c.Marker.Namespace}
	if c.Concurrency > 0 {
		opts.Concurrency = c.Concurrency
	}
	return opts, opts.Validate()
}

func suggestionFor(field string) string {
	switch field {
	case "strategy":
		return "Use one of: named, qualified, inherited"
	case "output":
		return "Set -out or the output key to a directory"
	case "marker.name":
		return "The marker name must be a C# identifier such as AutoImplement"
	case "marker.namespace":
		return "The marker namespace must be a dotted name such as AttributeGenerator"
	case "include", "exclude":
		return "Patterns use doublestar syntax, for example **/*.cs"
	default:
		return "Use zero for the default or a positive number"
	}
}
