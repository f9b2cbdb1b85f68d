package report

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// Definition is a YAML report request consumed by the CLI.
type Definition struct {
	Type     string   `yaml:"type"`     // executive or county
	Counties []string `yaml:"counties"` // county type only
	Format   Format   `yaml:"format"`   // markdown (default) or html
}

// LoadDefinition reads and validates a YAML report definition.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing report definition %s: %w", path, err)
	}
	if def.Format == "" {
		def.Format = FormatMarkdown
	}
	for i, name := range def.Counties {
		def.Counties[i] = strings.ToUpper(strings.TrimSpace(name))
	}

	switch def.Type {
	case "executive":
	case "county":
		if len(def.Counties) == 0 {
			return nil, fmt.Errorf("county report definition needs at least one county")
		}
	default:
		return nil, fmt.Errorf("unknown report type %q", def.Type)
	}
	if def.Format != FormatMarkdown && def.Format != FormatHTML {
		return nil, fmt.Errorf("unknown report format %q", def.Format)
	}

	return &def, nil
}

// Generate renders the report a definition describes. County reports over
// multiple counties are concatenated.
func Generate(def *Definition, counties []models.County, decls []models.Declaration) (string, error) {
	switch def.Type {
	case "executive":
		return RenderExecutiveSummary(BuildExecutiveSummary(counties, decls), def.Format)
	case "county":
		var parts []string
		for _, name := range def.Counties {
			county, ok := findCounty(counties, name)
			if !ok {
				return "", fmt.Errorf("unknown county %q", name)
			}
			var countyDecls []models.Declaration
			for _, d := range decls {
				if d.County == county.Name {
					countyDecls = append(countyDecls, d)
				}
			}
			out, err := RenderCountyReport(BuildCountyReport(county, counties, countyDecls), def.Format)
			if err != nil {
				return "", err
			}
			parts = append(parts, out)
		}
		return strings.Join(parts, "\n---\n\n"), nil
	default:
		return "", fmt.Errorf("unknown report type %q", def.Type)
	}
}

func findCounty(counties []models.County, name string) (models.County, bool) {
	for _, c := range counties {
		if c.Name == name {
			return c, true
		}
	}
	return models.County{}, false
}
