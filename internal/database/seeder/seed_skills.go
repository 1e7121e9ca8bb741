package seeder

import (
	"context"
	"fmt"

	"skill-community/internal/database"
	"skill-community/internal/domain/skill"
)

var skillCategories = map[string]string{
	"JavaScript":         "Programming Language",
	"Python":             "Programming Language",
	"Java":               "Programming Language",
	"Go":                 "Programming Language",
	"TypeScript":         "Programming Language",
	"React":              "Framework",
	"Node.js":            "Framework",
	"SQL":                "Database",
	"PostgreSQL":         "Database",
	"MongoDB":            "Database",
	"Docker":             "DevOps",
	"Kubernetes":         "DevOps",
	"AWS":                "Cloud",
	"Machine Learning":   "Data",
	"Data Analysis":      "Data",
	"UI/UX Design":       "Design",
	"Figma":              "Design",
	"Project Management": "Management",
}

// SkillsSeeder writes the default skill vocabulary into the skills table.
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

	for _, name := range skill.DefaultVocabulary {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (name, category) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			name,
			skillCategories[name],
		); err != nil {
			return fmt.Errorf("insert skill %q: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
