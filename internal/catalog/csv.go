package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// LoadCSV reads a catalog export with the header
// garment,label,standard,materials,cotton_types,brands,colors.
// List cells are separated by ";". A row with an empty garment column adds
// its list values to the garment above it.
func LoadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may have trailing commas
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["garment"]; !ok {
		return nil, errors.New("missing garment column")
	}

	var (
		garments []Garment
		current  *Garment
		line     = 1
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		garmentType := pick(record, index, "garment")
		if garmentType == "" {
			if current == nil {
				continue
			}
			// Continuation rows extend the option lists of the garment above.
			current.Materials = append(current.Materials, splitList(pick(record, index, "materials"))...)
			current.CottonTypes = append(current.CottonTypes, splitList(pick(record, index, "cotton_types"))...)
			current.Brands = append(current.Brands, splitList(pick(record, index, "brands"))...)
			current.Colors = append(current.Colors, splitList(pick(record, index, "colors"))...)
			continue
		}

		g, err := parseRow(record, index, domain.GarmentType(garmentType))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		garments = append(garments, g)
		current = &garments[len(garments)-1]
	}

	if len(garments) == 0 {
		return nil, errors.New("catalog has no garments")
	}
	for _, g := range garments {
		if len(g.Colors) == 0 {
			return nil, fmt.Errorf("garment %q has no colors", g.Type)
		}
		if g.Standard && (len(g.Materials) == 0 || len(g.CottonTypes) == 0 || len(g.Brands) == 0) {
			return nil, fmt.Errorf("standard garment %q needs materials, cotton types and brands", g.Type)
		}
	}
	return New(garments), nil
}

// LoadFile opens path and parses it with LoadCSV.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCSV(f)
}

func parseRow(record []string, index map[string]int, t domain.GarmentType) (Garment, error) {
	g := Garment{
		Type:        t,
		Label:       pick(record, index, "label"),
		Standard:    t.IsStandard(),
		Materials:   splitList(pick(record, index, "materials")),
		CottonTypes: splitList(pick(record, index, "cotton_types")),
		Brands:      splitList(pick(record, index, "brands")),
		Colors:      splitList(pick(record, index, "colors")),
	}
	if g.Label == "" {
		g.Label = string(t)
	}
	if raw := pick(record, index, "standard"); raw != "" {
		standard, err := strconv.ParseBool(raw)
		if err != nil {
			return Garment{}, fmt.Errorf("invalid standard flag %q for %q", raw, t)
		}
		g.Standard = standard
	}
	return g, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
