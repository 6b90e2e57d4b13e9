package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/catalog"
)

func main() {
	var (
		filePath string
		asJSON   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a garment catalog CSV (defaults to the built-in catalog)")
	flag.BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	flag.Parse()

	cat := catalog.Default()
	if filePath != "" {
		var err error
		cat, err = catalog.LoadFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid catalog %s: %v\n", filePath, err)
			os.Exit(1)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cat); err != nil {
			fmt.Fprintf(os.Stderr, "encode catalog: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, g := range cat.Garments {
		kind := "basic"
		if g.Standard {
			kind = "standard"
		}
		fmt.Printf("%s (%s, %s)\n", g.Label, g.Type, kind)
		fmt.Printf("  materials: %s\n", strings.Join(g.Materials, ", "))
		fmt.Printf("  cotton:    %s\n", strings.Join(g.CottonTypes, ", "))
		fmt.Printf("  brands:    %s\n", strings.Join(g.Brands, ", "))
		fmt.Printf("  colors:    %s\n", strings.Join(g.Colors, ", "))
	}
	fmt.Printf("%d garments, %d print locations\n", len(cat.Garments), len(cat.Locations))
}
