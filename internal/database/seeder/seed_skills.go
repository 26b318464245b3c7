package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Guitar", Category: "Music"},
		{Name: "Piano", Category: "Music"},
		{Name: "Singing", Category: "Music"},
		{Name: "Photography", Category: "Creative"},
		{Name: "Video Editing", Category: "Creative"},
		{Name: "Graphic Design", Category: "Creative"},
		{Name: "Drawing", Category: "Creative"},
		{Name: "Cooking", Category: "Lifestyle"},
		{Name: "Baking", Category: "Lifestyle"},
		{Name: "Gardening", Category: "Lifestyle"},
		{Name: "Yoga", Category: "Fitness"},
		{Name: "Swimming", Category: "Fitness"},
		{Name: "Web Development", Category: "Technology"},
		{Name: "Python", Category: "Technology"},
		{Name: "Excel", Category: "Technology"},
		{Name: "Data Analysis", Category: "Technology"},
		{Name: "English", Category: "Languages"},
		{Name: "Spanish", Category: "Languages"},
		{Name: "French", Category: "Languages"},
		{Name: "Japanese", Category: "Languages"},
		{Name: "Public Speaking", Category: "Business"},
		{Name: "Marketing", Category: "Business"},
		{Name: "Accounting", Category: "Business"},
		{Name: "Writing", Category: "Business"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
