// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogue keeps a local SQLite snapshot of the recipe catalogue
// for offline search and export. The snapshot is written whole: Replace
// swaps every row in one transaction.
package catalogue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gourmet/pkg/types"
)

// DefaultSearchLimit caps Search results when the caller passes no limit.
const DefaultSearchLimit = 20

// Store manages the snapshot database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the snapshot database at path, creating its
// parent directory and the schema when missing.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalogue directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			prep_time REAL,
			cook_time REAL,
			servings REAL,
			calories REAL,
			cost REAL,
			difficulty TEXT,
			category TEXT,
			when_to_eat TEXT,
			disclaimer TEXT,
			ingredients TEXT,
			instructions TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_id ON recipes(id)`,
		`CREATE TABLE IF NOT EXISTS snapshot (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace discards the current snapshot and stores recipes in order.
func (s *Store) Replace(ctx context.Context, recipes types.Recipes) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO recipes (position, id, name, description, image_url,
			prep_time, cook_time, servings, calories, cost,
			difficulty, category, when_to_eat, disclaimer, ingredients, instructions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range recipes {
		ingredients, err := textColumn(r.Ingredients)
		if err != nil {
			return fmt.Errorf("encoding ingredients of %s: %w", r.ID, err)
		}
		instructions, err := textColumn(r.Instructions)
		if err != nil {
			return fmt.Errorf("encoding instructions of %s: %w", r.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			i, r.ID, r.Name, r.Description, r.ImageURL,
			r.PrepTime, r.CookTime, r.Servings, r.Calories, r.Cost,
			r.Difficulty, r.Category, r.WhenToEat, r.Disclaimer,
			ingredients, instructions,
		)
		if err != nil {
			return fmt.Errorf("inserting recipe %s: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot (key, value) VALUES ('fetched_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording snapshot time: %w", err)
	}

	return tx.Commit()
}

// FetchedAt returns when the snapshot was last replaced. ok is false for a
// store that was never filled.
func (s *Store) FetchedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	var value string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM snapshot WHERE key = 'fetched_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading snapshot time: %w", err)
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing snapshot time: %w", err)
	}
	return t, true, nil
}

// All returns the snapshot in its stored order.
func (s *Store) All(ctx context.Context) (types.Recipes, error) {
	return s.query(ctx, selectRecipes+` ORDER BY position`)
}

// Search returns recipes whose name, description or category contains text,
// ignoring case. A limit of zero or less uses DefaultSearchLimit.
func (s *Store) Search(ctx context.Context, text string, limit int) (types.Recipes, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(text))) + "%"
	return s.query(ctx,
		selectRecipes+`
		WHERE lower(name) LIKE ? ESCAPE '\'
			OR lower(coalesce(description, '')) LIKE ? ESCAPE '\'
			OR lower(coalesce(category, '')) LIKE ? ESCAPE '\'
		ORDER BY position
		LIMIT ?`,
		pattern, pattern, pattern, limit,
	)
}

const selectRecipes = `SELECT id, name, description, image_url,
	prep_time, cook_time, servings, calories, cost,
	difficulty, category, when_to_eat, disclaimer, ingredients, instructions
	FROM recipes`

func (s *Store) query(ctx context.Context, q string, args ...any) (types.Recipes, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalogue: %w", err)
	}
	defer rows.Close()

	var out types.Recipes
	for rows.Next() {
		var (
			r                                    types.Recipe
			description, imageURL                sql.NullString
			difficulty, category, when, disclaim sql.NullString
			ingredients, instructions            sql.NullString
			prep, cook, servings, calories, cost sql.NullFloat64
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &description, &imageURL,
			&prep, &cook, &servings, &calories, &cost,
			&difficulty, &category, &when, &disclaim, &ingredients, &instructions,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Description = description.String
		r.ImageURL = imageURL.String
		r.Difficulty = difficulty.String
		r.Category = category.String
		r.WhenToEat = when.String
		r.Disclaimer = disclaim.String
		r.PrepTime = nullNumber(prep)
		r.CookTime = nullNumber(cook)
		r.Servings = nullNumber(servings)
		r.Calories = nullNumber(calories)
		r.Cost = nullNumber(cost)
		r.Ingredients = nullText(ingredients)
		r.Instructions = nullText(instructions)

		out = append(out, r)
	}
	return out, rows.Err()
}

// textColumn stores a Text as JSON so a block and a list stay distinct.
func textColumn(t *types.Text) (any, error) {
	if t == nil {
		return nil, nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullText(s sql.NullString) *types.Text {
	if !s.Valid {
		return nil
	}
	var t types.Text
	if err := json.Unmarshal([]byte(s.String), &t); err != nil {
		return nil
	}
	return &t
}

func nullNumber(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return types.Number(f.Float64)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
