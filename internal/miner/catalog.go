package miner

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/edulingua/backend/internal/domain/analysis"
)

//go:embed remediation.yaml
var remediationYAML []byte

// remediation is the practice material for one error type.
type remediation struct {
	Topic   string   `yaml:"topic"`
	Prompts []string `yaml:"prompts"`
}

var catalog = loadCatalog()

func loadCatalog() map[analysis.ErrorType]remediation {
	var raw map[analysis.ErrorType]remediation
	if err := yaml.Unmarshal(remediationYAML, &raw); err != nil {
		// The catalog is embedded at build time; a parse failure is a
		// packaging defect, not a runtime condition.
		panic("miner: bad remediation catalog: " + err.Error())
	}
	return raw
}

// remediationFor returns the catalog entry for an error type, or a
// generic fallback for types the catalog does not know.
func remediationFor(t analysis.ErrorType) remediation {
	if r, ok := catalog[t]; ok {
		return r
	}
	return remediation{
		Topic:   "General grammar review",
		Prompts: []string{"Review your recent corrections and rewrite each original sentence."},
	}
}
