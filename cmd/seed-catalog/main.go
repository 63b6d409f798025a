// Command seed-catalog bulk-loads catalog items from a JSON file into the
// catalog collection. The catalog is seeded independently of the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flickmark/flickmark-be/internal/config"
	"github.com/flickmark/flickmark-be/internal/database"
	"github.com/flickmark/flickmark-be/internal/logger"
	"github.com/flickmark/flickmark-be/internal/models"
)

func main() {
	file := flag.String("file", "catalog.json", "path to the catalog JSON file")
	drop := flag.Bool("drop", false, "empty the catalog collection before inserting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.AppEnv)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read catalog file")
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse catalog file")
	}
	if len(items) == 0 {
		log.Fatal().Str("file", *file).Msg("Catalog file contains no items")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	coll := db.Catalog()

	if *drop {
		res, err := coll.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to empty catalog collection")
		}
		log.Info().Int64("deleted", res.DeletedCount).Msg("Emptied catalog collection")
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}

	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to insert catalog items")
	}

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count catalog items")
	}

	log.Info().
		Int("inserted", len(res.InsertedIDs)).
		Int64("total", total).
		Str("database", cfg.MongoDatabase).
		Msg("Catalog seeded")
}
