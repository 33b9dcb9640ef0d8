package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"vanphal/internal/model"
)

// generateSeedData writes the default catalogue seed files the server loads
// on first boot. Run it once to get a populated local storefront:
//
//	go run scripts/generate_seed_data.go
func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.Product{
		{
			ID:           "jam-apricot",
			Name:         "Wild Apricot Jam",
			Description:  "Slow-cooked wild apricots from high-altitude orchards, no added pectin.",
			Price:        499,
			Weight:       "250g",
			Categories:   []string{"Jams", "Organic"},
			Ingredients:  []string{"Wild apricots", "Cane sugar", "Lemon juice"},
			Nutrition:    model.Nutrition{Calories: "45 kcal", Fat: "0g", Sugar: "10g", Protein: "0.2g"},
			Tags:         []string{"bestseller"},
			IsBestSeller: true,
			Stock:        40,
		},
		{
			ID:          "jam-plum",
			Name:        "Himalayan Plum Preserve",
			Description: "Chunky plum preserve with a hint of cinnamon.",
			Price:       549,
			Weight:      "250g",
			Categories:  []string{"Jams", "Preserves"},
			Ingredients: []string{"Plums", "Cane sugar", "Cinnamon"},
			Stock:       25,
		},
		{
			ID:          "chutney-plum",
			Name:        "Plum Chutney",
			Description: "Sweet and sour chutney, pairs with everything fried.",
			Price:       699,
			Weight:      "300g",
			Categories:  []string{"Chutneys"},
			Ingredients: []string{"Plums", "Jaggery", "Spices"},
			IsNew:       true,
			Stock:       30,
		},
		{
			ID:          "chutney-mint",
			Name:        "Mountain Mint Chutney",
			Description: "Fresh mint and green chilli, stone-ground.",
			Price:       349,
			Weight:      "200g",
			Categories:  []string{"Chutneys", "Seasonal"},
			Stock:       0,
		},
	}

	offers := []model.Offer{
		{
			ID:          "offer-spring",
			Title:       "Spring Sale",
			Description: "25% off everything in the store.",
			Code:        "SPRING25",
			Discount:    25,
			IsActive:    true,
		},
		{
			ID:          "offer-apricot",
			Title:       "Apricot Week",
			Description: "Half price on Wild Apricot Jam.",
			Code:        "APRICOT50",
			Discount:    50,
			IsActive:    false,
			ProductID:   "jam-apricot",
		},
	}

	categories := []string{"Jams", "Preserves", "Chutneys", "Seasonal", "Organic"}

	files := map[string]any{
		"products.json":   products,
		"offers.json":     offers,
		"categories.json": categories,
	}

	for name, value := range files {
		path := filepath.Join(dataDir, name)
		if err := writeJSON(path, value); err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}
		fmt.Printf("Created %s\n", path)
	}

	fmt.Println("\nSeed files created. Start the server and the catalogue will be populated on first boot.")
}

func writeJSON(path string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
