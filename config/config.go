package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

const (
	// ModeTUI interactive terminal form.
	ModeTUI = "tui"
	// ModeWeb HTTP server with JSON API and HTML page.
	ModeWeb = "web"

	defaultAPIURL         = "https://api.coingecko.com/api/v3"
	defaultRequestTimeout = 10 * time.Second
	defaultListenAddr     = ":8080"

	apiKeyEnv = "COINGECKO_API_KEY"
)

type Config struct {
	Mode           string
	APIURL         string
	APIKey         string
	DefaultFiat    domain.FiatCode
	RequestTimeout time.Duration
	ListenAddr     string
	// JournalDir enables the conversion journal when set.
	JournalDir string
	LogLevel   zapcore.Level
}

type ConfigTmp struct {
	Mode           string        `yaml:"mode,omitempty"`
	APIURL         string        `yaml:"api_url,omitempty"`
	APIKey         string        `yaml:"api_key,omitempty"`
	DefaultFiat    string        `yaml:"default_fiat,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	ListenAddr     string        `yaml:"listen_addr,omitempty"`
	JournalDir     string        `yaml:"journal_dir,omitempty"`
	LogLevel       string        `yaml:"log_level,omitempty"`
}

// Get reads configuration from the command line of the running process.
func Get() (Config, error) {
	return Parse(os.Args[1:])
}

// Parse reads configuration from a yaml file given by --config, or from flags otherwise.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("coinconv", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config")
	mode := fs.String("mode", ModeTUI, "run mode: tui or web")
	apiURL := fs.String("apiurl", defaultAPIURL, "CoinGecko API base url")
	fiat := fs.String("fiat", string(domain.FiatUSD), "default fiat currency: USD, EUR, INR, GBP or JPY")
	timeout := fs.Duration("timeout", defaultRequestTimeout, "outbound request timeout")
	listen := fs.String("listen", defaultListenAddr, "listen address in web mode")
	journal := fs.String("journal", "", "directory of the conversion journal, empty disables it")
	logLevel := fs.String("loglevel", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return build(ConfigTmp{
		Mode:           *mode,
		APIURL:         *apiURL,
		DefaultFiat:    *fiat,
		RequestTimeout: *timeout,
		ListenAddr:     *listen,
		JournalDir:     *journal,
		LogLevel:       *logLevel,
	})
}

func getYaml(path string) (Config, error) {
	var c ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &c); err != nil {
		return Config{}, err
	}

	return build(c)
}

func build(c ConfigTmp) (Config, error) {
	conf := Config{
		Mode:           strings.ToLower(strings.TrimSpace(c.Mode)),
		APIURL:         strings.TrimSpace(c.APIURL),
		APIKey:         c.APIKey,
		RequestTimeout: c.RequestTimeout,
		ListenAddr:     c.ListenAddr,
		JournalDir:     c.JournalDir,
	}

	if conf.Mode == "" {
		conf.Mode = ModeTUI
	}
	if conf.Mode != ModeTUI && conf.Mode != ModeWeb {
		return Config{}, fmt.Errorf("incorrect 'mode' param: %s, must be %s or %s", c.Mode, ModeTUI, ModeWeb)
	}

	if conf.APIURL == "" {
		conf.APIURL = defaultAPIURL
	}
	if key := os.Getenv(apiKeyEnv); key != "" {
		conf.APIKey = key
	}

	if c.DefaultFiat == "" {
		conf.DefaultFiat = domain.FiatUSD
	} else {
		fiat, err := domain.ParseFiatCode(c.DefaultFiat)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'default_fiat' param: %s, must be one of %v", c.DefaultFiat, domain.FiatCodes())
		}
		conf.DefaultFiat = fiat
	}

	if conf.RequestTimeout == 0 {
		conf.RequestTimeout = defaultRequestTimeout
	}
	if conf.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("incorrect 'request_timeout' param: %s, must be positive", c.RequestTimeout)
	}

	if conf.ListenAddr == "" {
		conf.ListenAddr = defaultListenAddr
	}

	level := zapcore.InfoLevel
	if c.LogLevel != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
			return Config{}, fmt.Errorf("incorrect 'log_level' param: %s, error: %w", c.LogLevel, err)
		}
	}
	conf.LogLevel = level

	return conf, nil
}
