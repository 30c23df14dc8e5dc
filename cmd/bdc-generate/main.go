// bdc-generate renders a completed Bon de Commande from a JSON config.
//
// Usage (from backend directory):
//
//	go run ./cmd/bdc-generate '<JSON_CONFIG>'
//	go run ./cmd/bdc-generate path/to/config.json
//
// Flags:
//
//	-out path  override the output path derived from the config
//	-strict    refuse drafts: active solutions must carry complete pricing
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/deskea/bdc_backend/compose"
	"bitbucket.org/deskea/bdc_backend/config"
	"bitbucket.org/deskea/bdc_backend/models"
	"bitbucket.org/deskea/bdc_backend/render"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	outFlag := flag.String("out", "", "output path (default: derived from client name and date)")
	strictFlag := flag.Bool("strict", false, "validated mode: reject incomplete financial data")
	flag.Parse()

	configArg := flag.Arg(0)
	if configArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: bdc-generate '<JSON_CONFIG>'")
		fmt.Fprintln(os.Stderr, "  or:  bdc-generate path/to/config.json")
		os.Exit(1)
	}

	// Try as file path first, then as inline JSON.
	raw := []byte(configArg)
	if _, err := os.Stat(configArg); err == nil {
		raw, err = os.ReadFile(configArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}

	var cfg models.OrderConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
		os.Exit(1)
	}

	strict := *strictFlag || config.StrictFinancials()
	normalized, err := compose.Normalize(&cfg, time.Now(), strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}
	doc, err := compose.Assemble(normalized)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}
	data, err := render.NewXLSX().Render(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}

	outputPath := normalized.OutputPath
	if *outFlag != "" {
		outputPath = *outFlag
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("BDC generated: %s\n", outputPath)
	fmt.Printf("Size: %.1f KB\n", float64(len(data))/1024)
}
