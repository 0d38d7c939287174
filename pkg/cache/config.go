package cache

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/media"
)

const (
	defaultPath     = "~/.daybook"
	defaultAPI      = "http://localhost:3001/api"
	defaultLanguage = "zh"
	defaultModel    = "gemini-2.5-flash"
)

// Config is the resolved client configuration.
type Config interface {
	BasePath() string
	API() string
	Origin() string
	Language() string
	Model() string
}

// LoadConfig reads .daybook.yaml from $DAYBOOK_CONFIG_PATH, the working
// directory or $HOME, with DAYBOOK_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("api", defaultAPI)
	viper.SetDefault("language", defaultLanguage)
	viper.SetDefault("gemini.model", defaultModel)
	viper.SetConfigName(".daybook") // .yaml is implicit
	viper.SetEnvPrefix("DAYBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	api := strings.TrimSuffix(viper.GetString("api"), "/")
	origin := viper.GetString("origin")
	if origin == "" {
		origin = media.OriginFromAPI(api)
	}
	return &fileConfig{
		Path:   path,
		APIURL: api,
		Media:  origin,
		Lang:   viper.GetString("language"),
		Gemini: viper.GetString("gemini.model"),
	}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	APIURL string `json:"api"`
	Media  string `json:"origin"`
	Lang   string `json:"language"`
	Gemini string `json:"model"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) API() string      { return f.APIURL }
func (f *fileConfig) Origin() string   { return f.Media }
func (f *fileConfig) Language() string { return f.Lang }
func (f *fileConfig) Model() string    { return f.Gemini }

// StaticConfig is a Config built in code.
type StaticConfig struct {
	Path   string
	APIURL string
	Media  string
	Lang   string
	Gemini string
}

func (c StaticConfig) BasePath() string { return c.Path }
func (c StaticConfig) API() string      { return c.APIURL }
func (c StaticConfig) Origin() string {
	if c.Media == "" {
		return media.OriginFromAPI(c.APIURL)
	}
	return c.Media
}
func (c StaticConfig) Language() string { return c.Lang }
func (c StaticConfig) Model() string    { return c.Gemini }
