package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jcurry/wa-firewatch/internal/models"
)

// declaration date formats seen in the FEMA exports.
var declarationDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

// LoadDeclarations parses the geocoded FEMA disaster declarations CSV.
func LoadDeclarations(path string) ([]models.Declaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening declarations file: %w", err)
	}
	defer f.Close()

	return parseDeclarations(f)
}

func parseDeclarations(r io.Reader) ([]models.Declaration, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading declarations header: %w", err)
	}

	cols := indexHeader(header)
	for _, required := range []string{"disasternumber", "county", "declarationdate"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("declarations file missing %s column", required)
		}
	}

	var decls []models.Declaration
	now := time.Now()
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading declarations line %d: %w", line, err)
		}

		row := rowReader{cols: cols, record: record}
		date, err := parseDeclarationDate(row.str("declarationdate"))
		if err != nil {
			return nil, fmt.Errorf("declarations line %d: %w", line, err)
		}
		lat, err := row.float("latitude")
		if err != nil {
			return nil, fmt.Errorf("declarations line %d: %w", line, err)
		}
		lon, err := row.float("longitude")
		if err != nil {
			return nil, fmt.Errorf("declarations line %d: %w", line, err)
		}

		decls = append(decls, models.Declaration{
			Number:    strings.TrimSpace(row.str("disasternumber")),
			Title:     strings.TrimSpace(row.str("declarationtitle")),
			County:    strings.ToUpper(strings.TrimSpace(row.str("county"))),
			Date:      date,
			Latitude:  lat,
			Longitude: lon,
			CreatedAt: now,
		})
	}

	return decls, nil
}

func parseDeclarationDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range declarationDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable declaration date %q", raw)
}
