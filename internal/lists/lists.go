// Package lists holds the curated list data the pipeline matches against:
// the Japanese-company blocklist, the S&P 500 fallback member list, the
// priority backfill list, and the known Tokyo-address list. Defaults are
// embedded; an external YAML file can override them without a rebuild.
package lists

import (
	"embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/tokyomaps/companymaps/internal/model"
)

//go:embed data/lists.yaml
var defaultsFS embed.FS

// Lists is the full curated list schema.
type Lists struct {
	JapaneseBlocklist []string             `yaml:"japanese_blocklist"`
	SP500Fallback     []string             `yaml:"sp500_fallback"`
	PriorityFallback  []string             `yaml:"priority_fallback"`
	KnownTokyo        []model.KnownCompany `yaml:"known_tokyo"`
}

// Default returns the embedded curated lists.
func Default() (*Lists, error) {
	data, err := defaultsFS.ReadFile("data/lists.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "lists: read embedded defaults")
	}
	return parse(data)
}

// Load reads curated lists from the given YAML file, falling back to the
// embedded defaults when path is empty.
func Load(path string) (*Lists, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lists: read %s", path)
	}
	return parse(data)
}

func parse(data []byte) (*Lists, error) {
	var l Lists
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, eris.Wrap(err, "lists: parse yaml")
	}
	return &l, nil
}
