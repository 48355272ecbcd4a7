package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// GDPInfo describes a GDP data file: where it is, which column holds the
// country name and how the file is delimited. Keys match the dataset
// description files shipped with the data.
type GDPInfo struct {
	GDPFile     string `mapstructure:"gdpfile" json:"gdpfile"`
	CountryName string `mapstructure:"country_name" json:"country_name"`
	CountryCode string `mapstructure:"country_code" json:"country_code"`
	Separator   string `mapstructure:"separator" json:"separator"`
	Quote       string `mapstructure:"quote" json:"quote"`

	// MinYear and MaxYear are informational; years outside the range are
	// still resolved.
	MinYear int `mapstructure:"min_year" json:"min_year"`
	MaxYear int `mapstructure:"max_year" json:"max_year"`
}

// DefaultGDPInfo returns the description of the standard isp_gdp.csv file.
func DefaultGDPInfo() GDPInfo {
	return GDPInfo{
		GDPFile:     "isp_gdp.csv",
		CountryName: "Country Name",
		CountryCode: "Country Code",
		Separator:   ",",
		Quote:       `"`,
		MinYear:     1960,
		MaxYear:     2015,
	}
}

// LoadGDPInfo reads a dataset description from path (YAML, JSON or TOML,
// chosen by extension) on top of DefaultGDPInfo. Environment variables
// prefixed GDPINFO_ override file values, e.g. GDPINFO_GDPFILE.
//
// An empty path loads defaults plus environment overrides. A relative
// gdpfile in a description file is resolved against the file's directory.
func LoadGDPInfo(path string) (GDPInfo, error) {
	def := DefaultGDPInfo()

	v := viper.New()
	v.SetDefault("gdpfile", def.GDPFile)
	v.SetDefault("country_name", def.CountryName)
	v.SetDefault("country_code", def.CountryCode)
	v.SetDefault("separator", def.Separator)
	v.SetDefault("quote", def.Quote)
	v.SetDefault("min_year", def.MinYear)
	v.SetDefault("max_year", def.MaxYear)
	v.SetEnvPrefix("GDPINFO")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return GDPInfo{}, fmt.Errorf("invalid gdpinfo: read %s: %w", path, err)
		}
	}

	var info GDPInfo
	if err := v.Unmarshal(&info); err != nil {
		return GDPInfo{}, fmt.Errorf("invalid gdpinfo: %w", err)
	}

	if path != "" && v.InConfig("gdpfile") && !filepath.IsAbs(info.GDPFile) {
		info.GDPFile = filepath.Join(filepath.Dir(path), info.GDPFile)
	}

	if err := info.Validate(); err != nil {
		return GDPInfo{}, err
	}
	return info, nil
}

// Validate checks the description and reports every problem at once.
func (g GDPInfo) Validate() error {
	var errs []string

	if g.GDPFile == "" {
		errs = append(errs, "gdpfile is required")
	}
	if g.CountryName == "" {
		errs = append(errs, "country_name is required")
	}
	if utf8.RuneCountInString(g.Separator) != 1 {
		errs = append(errs, fmt.Sprintf("separator (%q) must be a single character", g.Separator))
	}
	if utf8.RuneCountInString(g.Quote) != 1 {
		errs = append(errs, fmt.Sprintf("quote (%q) must be a single character", g.Quote))
	}
	if g.Separator != "" && g.Separator == g.Quote {
		errs = append(errs, "separator and quote must differ")
	}
	if g.Separator == "\n" || g.Separator == "\r" || g.Quote == "\n" || g.Quote == "\r" {
		errs = append(errs, "separator and quote cannot be line breaks")
	}
	if g.MinYear > g.MaxYear {
		errs = append(errs, fmt.Sprintf("min_year (%d) must be <= max_year (%d)", g.MinYear, g.MaxYear))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid gdpinfo:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SeparatorRune returns the field separator.
func (g GDPInfo) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(g.Separator)
	return r
}

// QuoteRune returns the quote character.
func (g GDPInfo) QuoteRune() rune {
	r, _ := utf8.DecodeRuneInString(g.Quote)
	return r
}

// InRange reports whether year lies within [MinYear, MaxYear].
func (g GDPInfo) InRange(year string) bool {
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return y >= g.MinYear && y <= g.MaxYear
}

// Years returns every year label from MinYear to MaxYear.
func (g GDPInfo) Years() []string {
	if g.MaxYear < g.MinYear {
		return nil
	}
	out := make([]string, 0, g.MaxYear-g.MinYear+1)
	for y := g.MinYear; y <= g.MaxYear; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// IsYear reports whether s is a four-digit year label.
func IsYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
