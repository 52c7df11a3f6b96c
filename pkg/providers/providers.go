package providers

import (
	"bytes"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/util"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindRail Kind = "rail"
	KindBus  Kind = "bus"
)

const (
	PathBetweenStations = "between"
	PathTrainLookup     = "lookup"
	PathRoute           = "route"
	PathBusSearch       = "search"
)

const DefaultTimeoutSeconds = 10

type Provider struct {
	Identifier     string            `yaml:"identifier"`
	Kind           Kind              `yaml:"kind"`
	BaseURL        string            `yaml:"baseurl"`
	Paths          map[string]string `yaml:"paths"`
	TimeoutSeconds int               `yaml:"timeoutseconds"`
	MaxRetries     int               `yaml:"maxretries"`
	Headers        map[string]string `yaml:"headers"`
}

func (p *Provider) Enabled() bool {
	return p.BaseURL != ""
}

func (p *Provider) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}

	return time.Duration(p.TimeoutSeconds) * time.Second
}

// URL joins the base URL with the named path and encodes params as the query string
func (p *Provider) URL(pathName string, params url.Values) (string, error) {
	path, ok := p.Paths[pathName]
	if !ok {
		return "", errors.New("provider " + p.Identifier + " has no path named " + pathName)
	}

	endpoint, err := url.Parse(strings.TrimRight(p.BaseURL, "/") + path)
	if err != nil {
		return "", err
	}

	if len(params) > 0 {
		query := endpoint.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		endpoint.RawQuery = query.Encode()
	}

	return endpoint.String(), nil
}

func Defaults() []*Provider {
	return []*Provider{
		{
			Identifier: "rail",
			Kind:       KindRail,
			BaseURL:    "https://erail.in",
			Paths: map[string]string{
				PathBetweenStations: "/rail/getTrains.aspx",
				PathTrainLookup:     "/rail/getTrains.aspx",
				PathRoute:           "/data.aspx",
			},
			TimeoutSeconds: DefaultTimeoutSeconds,
			MaxRetries:     2,
		},
		{
			Identifier: "bus",
			Kind:       KindBus,
			Paths: map[string]string{
				PathBusSearch: "/api/search",
			},
			TimeoutSeconds: DefaultTimeoutSeconds,
			MaxRetries:     1,
		},
	}
}

// Load reads every multi-document yaml file in directory. A missing directory yields no providers.
func Load(directory string) ([]*Provider, error) {
	var loaded []*Provider

	if _, err := os.Stat(directory); errors.Is(err, os.ErrNotExist) {
		return loaded, nil
	}

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading providers file")

			providersYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(providersYaml))

			for {
				var provider Provider
				if decoder.Decode(&provider) != nil {
					break
				}

				loaded = append(loaded, &provider)
			}

			return nil
		})

	return loaded, err
}

// ApplyEnvironment overrides base URLs and timeouts from TRAVIGO_ variables
func ApplyEnvironment(providers []*Provider, env map[string]string) {
	timeout := util.GetEnvironmentInt(env, "TRAVIGO_UPSTREAM_TIMEOUT_SECONDS", 0)

	for _, provider := range providers {
		switch provider.Kind {
		case KindRail:
			if env["TRAVIGO_RAIL_BASE_URL"] != "" {
				provider.BaseURL = env["TRAVIGO_RAIL_BASE_URL"]
			}
		case KindBus:
			if env["TRAVIGO_BUS_BASE_URL"] != "" {
				provider.BaseURL = env["TRAVIGO_BUS_BASE_URL"]
			}
		}

		if timeout > 0 {
			provider.TimeoutSeconds = timeout
		}
	}
}

// Get returns the first enabled provider of kind
func Get(providers []*Provider, kind Kind) *Provider {
	for _, provider := range providers {
		if provider.Kind == kind && provider.Enabled() {
			return provider
		}
	}

	return nil
}

// LoadConfigured loads data/providers/, falling back to Defaults, and applies the environment
func LoadConfigured() []*Provider {
	configured, err := Load("data/providers/")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load providers directory")
	}

	if len(configured) == 0 {
		configured = Defaults()
	}

	ApplyEnvironment(configured, util.GetEnvironmentVariables())

	return configured
}
