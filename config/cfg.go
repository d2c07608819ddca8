package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"papergen/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	StylesConfig struct {
		Body         string   `yaml:"body" validate:"required"`
		Headings     []string `yaml:"headings" validate:"len=4,dive,required"`
		ImageCaption string   `yaml:"image_caption" validate:"required"`
		TableCaption string   `yaml:"table_caption" validate:"required"`
		TableBody    string   `yaml:"table_body"`
		Bibliography string   `yaml:"bibliography" validate:"required"`
	}

	MetadataConfig struct {
		TitleZhLine     int `yaml:"title_zh_line" validate:"gte=0"`
		TitleEnLine     int `yaml:"title_en_line" validate:"gte=0"`
		FieldsFirstLine int `yaml:"fields_first_line" validate:"gte=0"`
		BlankWidth      int `yaml:"blank_width" validate:"min=1"`
	}

	AbstractConfig struct {
		EnTitleOffset    int    `yaml:"en_title_offset" validate:"min=1"`
		KeywordSeparator string `yaml:"keyword_separator" validate:"required"`
	}

	TemplateConfig struct {
		Path             string          `yaml:"path" sanitize:"assure_file_access"`
		StripTables      bool            `yaml:"strip_tables"`
		SkipRegions      []common.Region `yaml:"skip_regions"`
		ExpectedSections []string        `yaml:"expected_sections"`
		Styles           StylesConfig    `yaml:"styles"`
		Metadata         MetadataConfig  `yaml:"metadata"`
		Abstract         AbstractConfig  `yaml:"abstract"`
	}

	ImagesConfig struct {
		BoxWidthCm  float64 `yaml:"box_width_cm" validate:"gt=0"`
		BoxHeightCm float64 `yaml:"box_height_cm" validate:"gt=0"`
		MaxPixels   int     `yaml:"max_pixels" validate:"gte=0"`
		JPEGQuality int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	DocumentConfig struct {
		FixZip                bool         `yaml:"fix_zip"`
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		FirstLineIndent       int          `yaml:"first_line_indent_chars" validate:"gte=0"`
		Images                ImagesConfig `yaml:"images"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Template  TemplateConfig `yaml:"template"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above.
const OutputNameTemplateFieldName TemplateFieldName = "output_name_template"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// SkipRegion reports whether region was excluded by configuration.
func (conf *TemplateConfig) SkipRegion(r common.Region) bool {
	for _, s := range conf.SkipRegions {
		if s == r {
			return true
		}
	}
	return false
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we know about are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template to get defaults,
// puts values from the file at path (if any) on top of them and validates the
// result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
