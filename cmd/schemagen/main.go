package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/DjordjeVuckovic/news-ingest/pkg/schema"
)

// schemagen writes the JSON schema for query documents consumed by news_fetch,
// so editors can validate files under queries/.
func main() {
	outputDir := flag.String("output", "api", "Output directory for generated schemas")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	generator := schema.NewGenerator("https://schemas.news-ingest.dev")

	schemaJSON, err := generator.GenerateJSONSchema(query.Document{})
	if err != nil {
		log.Fatalf("Failed to generate schema for query document: %v", err)
	}

	jsonFile := filepath.Join(*outputDir, "query-v1.json")
	if err := os.WriteFile(jsonFile, []byte(schemaJSON), 0644); err != nil {
		log.Fatalf("Failed to write JSON schema: %v", err)
	}

	fmt.Printf("Generated JSON schema: %s\n", jsonFile)
}
