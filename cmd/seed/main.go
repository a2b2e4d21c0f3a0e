package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/dhanushgc/HireMind/internal/config"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/repository/specification"
	"github.com/dhanushgc/HireMind/internal/repository/unitofwork"
	"github.com/dhanushgc/HireMind/pkg/database"
)

// snippetFixture is one row of the seed file.
type snippetFixture struct {
	Type       string    `json:"type"`
	RefId      string    `json:"ref_id"`
	Document   string    `json:"document"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

func main() {
	file := flag.String("file", "cmd/seed/snippets.sample.json", "JSON array of context snippets")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Error: read %s: %v", *file, err)
	}

	var fixtures []snippetFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		log.Fatalf("Error: parse %s: %v", *file, err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: begin transaction: %v", err)
	}
	defer uow.Rollback()

	snippets := make([]*entity.ContextSnippet, 0, len(fixtures))
	for _, f := range fixtures {
		n, err := uow.ContextSnippetRepository().Count(ctx, specification.BySource{Type: f.Type, RefId: f.RefId})
		if err != nil {
			log.Fatalf("Error: count snippets: %v", err)
		}
		if n > 0 {
			log.Printf("Snippets for %s/%s already exist, skipping...", f.Type, f.RefId)
			continue
		}
		snippets = append(snippets, &entity.ContextSnippet{
			Type:           f.Type,
			RefId:          f.RefId,
			Document:       f.Document,
			ChunkIndex:     f.ChunkIndex,
			EmbeddingValue: f.Embedding,
		})
	}

	if err := uow.ContextSnippetRepository().CreateBulk(ctx, snippets); err != nil {
		log.Fatalf("Error: insert snippets: %v", err)
	}
	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: commit: %v", err)
	}

	log.Printf("Seeded %d context snippets", len(snippets))
}
