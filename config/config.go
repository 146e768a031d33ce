// Package config loads the settings of the command line tool
// from a TOML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/markup"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
)

// Page describes the default page of the documents.
type Page struct {
	// Size is a named format, or "width height" in points.
	Size           string `toml:"size"`
	Landscape      bool   `toml:"landscape"`
	Margin         string `toml:"margin"`
	BlankFirstPage bool   `toml:"blank_first_page"`
	Background     string `toml:"background"`
}

// FontFile is a font file registered under a family.
type FontFile struct {
	Family string `toml:"family"`
	Path   string `toml:"path"`
	Bold   bool   `toml:"bold"`
	Italic bool   `toml:"italic"`
}

type Text struct {
	// Font is the default font, like "Go 11".
	Font  string     `toml:"font"`
	Fonts []FontFile `toml:"fonts"`
}

type Output struct {
	Dir     string  `toml:"dir"`
	Pattern string  `toml:"pattern"`
	Scale   float64 `toml:"scale"`
}

// Config is the content of a configuration file.
type Config struct {
	Page   Page   `toml:"page"`
	Text   Text   `toml:"text"`
	Output Output `toml:"output"`

	// directory of the file, used to resolve relative paths
	dir string
}

// Default returns the settings used without configuration file.
func Default() Config {
	return Config{
		Page:   Page{Size: "A4", Margin: "36"},
		Text:   Text{Font: text.DefaultFont.String()},
		Output: Output{Dir: "out", Pattern: "page-%03d.png", Scale: 1},
		dir:    ".",
	}
}

func configError(format string, args ...interface{}) error {
	return utils.NewError(utils.CodeInvalidConfig, format, args...)
}

// Load reads the file at `path`, whose values override the defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, utils.WrapError(utils.CodeInvalidConfig, err, "reading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, configError("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (cfg Config) Validate() error {
	if _, err := cfg.PageSet(); err != nil {
		return err
	}
	if _, err := cfg.Font(); err != nil {
		return err
	}
	if cfg.Output.Scale <= 0 {
		return configError("output scale must be positive, got %g", cfg.Output.Scale)
	}
	if !strings.Contains(cfg.Output.Pattern, "%") {
		return configError("output pattern %q has no page number verb", cfg.Output.Pattern)
	}
	for _, f := range cfg.Text.Fonts {
		if f.Family == "" || f.Path == "" {
			return configError("font files require a family and a path")
		}
	}
	return nil
}

func wrap(err error, field string) error {
	return utils.WrapError(utils.CodeInvalidConfig, err, "invalid %s", field)
}

// PageSet returns the page geometry, without elements.
func (cfg Config) PageSet() (layout.PageSet, error) {
	var (
		ps  layout.PageSet
		err error
	)
	ps.Size, err = markup.ParsePageSize(cfg.Page.Size)
	if err != nil {
		return ps, wrap(err, "page.size")
	}
	if cfg.Page.Landscape {
		ps.Size = layout.Landscape(ps.Size)
	}
	if cfg.Page.Margin != "" {
		if ps.Margin, err = markup.ParseSides(cfg.Page.Margin); err != nil {
			return ps, wrap(err, "page.margin")
		}
	}
	if cfg.Page.Background != "" {
		if ps.Background, err = markup.ParseColor(cfg.Page.Background); err != nil {
			return ps, wrap(err, "page.background")
		}
	}
	ps.BlankFirstPage = cfg.Page.BlankFirstPage
	if ps.Margin.Horizontal() >= ps.Size.Width || ps.Margin.Vertical() >= ps.Size.Height {
		return ps, configError("page margins %s leave no room in a %s page", markup.FormatSides(ps.Margin), ps.Size)
	}
	return ps, nil
}

// Font returns the default font.
func (cfg Config) Font() (text.Font, error) {
	f, err := markup.ParseFont(cfg.Text.Font, text.DefaultFont)
	if err != nil {
		return f, wrap(err, "text.font")
	}
	return f, nil
}

// Path resolves `path` relatively to the configuration file.
func (cfg Config) Path(path string) string {
	if filepath.IsAbs(path) || cfg.dir == "" {
		return path
	}
	return filepath.Join(cfg.dir, path)
}

// Metrics returns font metrics with the configured font files registered.
func (cfg Config) Metrics() (*text.FaceMetrics, error) {
	fm := text.NewFaceMetrics()
	for _, f := range cfg.Text.Fonts {
		data, err := os.ReadFile(cfg.Path(f.Path))
		if err != nil {
			return nil, wrap(err, "text.fonts")
		}
		if err := fm.Register(f.Family, f.Bold, f.Italic, data); err != nil {
			return nil, wrap(err, "text.fonts")
		}
	}
	return fm, nil
}

// MarkupOptions returns the options used to parse a document
// located in `baseDir`.
func (cfg Config) MarkupOptions(baseDir string) (markup.Options, error) {
	ps, err := cfg.PageSet()
	if err != nil {
		return markup.Options{}, err
	}
	font, err := cfg.Font()
	if err != nil {
		return markup.Options{}, err
	}
	return markup.Options{Page: ps, Font: font, Open: markup.DirOpener(baseDir)}, nil
}

// PageSize is a shortcut for the size of the default page.
func (cfg Config) PageSize() (boxes.Size, error) {
	ps, err := cfg.PageSet()
	return ps.Size, err
}
