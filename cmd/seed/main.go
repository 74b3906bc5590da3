// Command seed loads a small demo catalog through the catalog service, so
// every reference set is maintained the same way live traffic maintains it.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/database"
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/service"
)

//go:embed seed.json
var seedData []byte

type seedRecipe struct {
	model.RecipeInput
	Author string `json:"author"`
}

type seedFile struct {
	Users   []model.UserInput `json:"users"`
	Recipes []seedRecipe      `json:"recipes"`
	Saves   []struct {
		User   string `json:"user"`
		Recipe string `json:"recipe"`
	} `json:"saves"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	var seed seedFile
	if err := json.Unmarshal(seedData, &seed); err != nil {
		log.Fatalf("Failed to parse seed data: %v", err)
	}

	ctx := context.Background()
	store, err := database.OpenStore(ctx, cfg, logger.Slog())
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close(ctx)

	catalog := service.NewCatalogService(store, service.DefaultPolicy(), logger)

	userIDs := make(map[string]string, len(seed.Users))
	for _, in := range seed.Users {
		user, err := catalog.AddUser(ctx, in)
		if errors.Is(err, service.ErrConflict) {
			// Already seeded; look the user up instead
			user, err = catalog.UserByCredentials(ctx, in.Username, in.Password)
		}
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", in.Username, err)
		}
		userIDs[in.Username] = user.ID
	}

	recipeIDs := make(map[string]string, len(seed.Recipes))
	for _, r := range seed.Recipes {
		in := r.RecipeInput
		in.AuthorID = userIDs[r.Author]

		recipe, err := catalog.AddRecipe(ctx, in)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", in.Title, err)
		}
		recipeIDs[in.Title] = recipe.ID
	}

	for _, s := range seed.Saves {
		if _, err := catalog.SaveRecipe(ctx, userIDs[s.User], recipeIDs[s.Recipe]); err != nil {
			log.Fatalf("Failed to save %q for %s: %v", s.Recipe, s.User, err)
		}
	}

	logger.Info(ctx, "seed complete", "users", len(userIDs), "recipes", len(recipeIDs), "saves", len(seed.Saves))
}
