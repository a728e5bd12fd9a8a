// Package advisor talks to an OpenAI-compatible chat completion
// endpoint for the written advice features. It never raises: missing
// configuration and upstream failures both come back as user-facing
// text.
package advisor

import (
	"bufio"
	"os"
	"strings"
)

const (
	defaultBaseURL = "https://api.deepseek.com"
	defaultModel   = "deepseek-chat"
)

// Alias names checked in fixed precedence order.
var (
	apiKeyAliases  = []string{"OPENAI_API_KEY", "DEEPSEEK_API_KEY", "AI_API_KEY"}
	baseURLAliases = []string{"OPENAI_BASE_URL", "DEEPSEEK_BASE_URL"}
	modelAliases   = []string{"OPENAI_MODEL", "DEEPSEEK_MODEL"}
)

// Settings is the resolved advisory configuration. An empty APIKey
// means the advisor is not configured.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
}

func (s Settings) Configured() bool {
	return s.APIKey != ""
}

// Lookup resolves one setting key to a raw value; empty means unset.
type Lookup func(key string) string

// EnvLookup reads settings from the environment.
func EnvLookup(key string) string {
	return os.Getenv(key)
}

// FileLookup reads settings from a KEY=VALUE secrets file. A missing
// file resolves nothing.
func FileLookup(path string) Lookup {
	values := map[string]string{}
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			k, v, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			values[strings.TrimSpace(k)] = cleanValue(v)
		}
	}
	return func(key string) string {
		return values[key]
	}
}

// ResolveSettings walks the alias lists in order; for each alias every
// lookup is tried in order and the first non-empty value wins.
func ResolveSettings(lookups ...Lookup) Settings {
	if len(lookups) == 0 {
		lookups = []Lookup{EnvLookup}
	}
	get := func(aliases []string, fallback string) string {
		for _, key := range aliases {
			for _, lookup := range lookups {
				if v := cleanValue(lookup(key)); v != "" {
					return v
				}
			}
		}
		return fallback
	}
	return Settings{
		APIKey:  get(apiKeyAliases, ""),
		BaseURL: get(baseURLAliases, defaultBaseURL),
		Model:   get(modelAliases, defaultModel),
	}
}

func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return strings.TrimSpace(v)
}
