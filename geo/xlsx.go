package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoCityRows is returned when a sheet contains no parsable city rows.
var ErrNoCityRows = errors.New("geo: no city rows in sheet")

// LoadXLSX reads cities from a spreadsheet. Expected layout: a header row
// followed by rows with columns Name | Lat | Lon. Rows with missing or
// unparsable coordinates are skipped, matching how operator-maintained
// sheets tend to carry stray notes. Decimal commas are accepted.
func LoadXLSX(path, sheet string) ([]City, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("geo: sheet %s: %w", sheet, err)
	}

	var cities []City
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		lat, err1 := parseCoord(row[1])
		lon, err2 := parseCoord(row[2])
		if err1 != nil || err2 != nil {
			continue
		}

		cities = append(cities, City{
			Name: strings.TrimSpace(row[0]),
			Lat:  lat,
			Lon:  lon,
		})
	}
	if len(cities) == 0 {
		return nil, ErrNoCityRows
	}

	return cities, nil
}

// parseCoord parses a coordinate cell, normalizing decimal commas.
func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, errors.New("empty")
	}

	return strconv.ParseFloat(val, 64)
}
