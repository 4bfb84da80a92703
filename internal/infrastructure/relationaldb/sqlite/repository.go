// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/ports"
	"github.com/ersonp/affinity/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

const (
	tablePeople    = "people"
	tableInterests = "interests"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	q    querier
	tx   *sql.Tx
	path string
}

var _ ports.Store = (*Repository)(nil)

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection: SQLite has a single writer, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		q:    db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection. It is a no-op on a
// transaction-bound repository.
func (r *Repository) Close() error {
	if r.tx != nil {
		return nil
	}
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS interests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- One row per person/interest pair; both directions read from it
	CREATE TABLE IF NOT EXISTS person_interests (
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		interest_id TEXT NOT NULL REFERENCES interests(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (person_id, interest_id)
	);
	CREATE INDEX IF NOT EXISTS idx_person_interests_interest ON person_interests(interest_id);
	`

	_, err := r.q.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// WithinTx runs fn inside a transaction. Nested calls reuse the outer
// transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(ports.Store) error) (err error) {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	txRepo := &Repository{db: r.db, q: tx, tx: tx, path: r.path}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SavePerson saves a person, assigning an ID if it doesn't have one.
func (r *Repository) SavePerson(ctx context.Context, p *entities.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	id, createdAt, err := r.saveNamed(ctx, tablePeople, p.ID, p.Name, p.NormalizedName(), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// SaveInterest saves an interest, assigning an ID if it doesn't have one.
func (r *Repository) SaveInterest(ctx context.Context, i *entities.Interest) error {
	if err := i.Validate(); err != nil {
		return err
	}
	id, createdAt, err := r.saveNamed(ctx, tableInterests, i.ID, i.Name, i.NormalizedName(), i.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving interest: %w", err)
	}
	i.ID = id
	i.CreatedAt = createdAt
	return nil
}

// saveNamed writes a row to one of the named tables (people, interests).
// Without an id, a row with the same normalized name is reused; otherwise
// a new id is generated. Returns the id and created_at actually stored.
func (r *Repository) saveNamed(
	ctx context.Context,
	table, id, name, normalizedName string,
	createdAt time.Time,
) (string, time.Time, error) {
	if id == "" {
		existingID, existingCreated, found, err := r.findIDByName(ctx, table, normalizedName)
		if err != nil {
			return "", time.Time{}, err
		}
		if found {
			id = existingID
			createdAt = existingCreated
		} else {
			id = generateUUID()
		}
	}
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, normalized_name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name
	`, table)
	if _, err := r.q.ExecContext(ctx, query, id, name, normalizedName, createdAt); err != nil {
		return "", time.Time{}, err
	}
	return id, createdAt, nil
}

func (r *Repository) findIDByName(ctx context.Context, table, normalizedName string) (string, time.Time, bool, error) {
	query := fmt.Sprintf(`SELECT id, created_at FROM %s WHERE normalized_name = ?`, table)

	var id string
	var createdAt time.Time
	err := r.q.QueryRowContext(ctx, query, normalizedName).Scan(&id, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("looking up %s by name: %w", table, err)
	}
	return id, createdAt, true, nil
}

// FindPersonByName finds a person by normalized name (case-insensitive).
func (r *Repository) FindPersonByName(ctx context.Context, name string) (*entities.Person, error) {
	query := `
		SELECT id, name, created_at
		FROM people
		WHERE normalized_name = ?
	`
	var p entities.Person
	err := r.q.QueryRowContext(ctx, query, entities.NormalizeName(name)).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return &p, nil
}

// FindInterestByName finds an interest by normalized name (case-insensitive).
func (r *Repository) FindInterestByName(ctx context.Context, name string) (*entities.Interest, error) {
	query := `
		SELECT id, name, created_at
		FROM interests
		WHERE normalized_name = ?
	`
	var i entities.Interest
	err := r.q.QueryRowContext(ctx, query, entities.NormalizeName(name)).Scan(&i.ID, &i.Name, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning interest: %w", err)
	}
	return &i, nil
}

// FindAllPeople returns every person in insertion order.
func (r *Repository) FindAllPeople(ctx context.Context) ([]*entities.Person, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, created_at FROM people ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := make([]*entities.Person, 0, 16)
	for rows.Next() {
		var p entities.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

// FindAllInterests returns every interest in insertion order.
func (r *Repository) FindAllInterests(ctx context.Context) ([]*entities.Interest, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, created_at FROM interests ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying interests: %w", err)
	}
	defer rows.Close()

	interests := make([]*entities.Interest, 0, 16)
	for rows.Next() {
		var i entities.Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning interest: %w", err)
		}
		interests = append(interests, &i)
	}
	return interests, rows.Err()
}

// SaveAssociation stores a person/interest edge. Existing pairs are left untouched.
func (r *Repository) SaveAssociation(ctx context.Context, a *entities.Association) error {
	if a.PersonID == "" || a.InterestID == "" {
		return errors.New("association requires saved person and interest")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = timeNow()
	}

	query := `
		INSERT OR IGNORE INTO person_interests (person_id, interest_id, created_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.q.ExecContext(ctx, query, a.PersonID, a.InterestID, a.CreatedAt); err != nil {
		return fmt.Errorf("saving association: %w", err)
	}
	return nil
}

// FindAllAssociations returns every edge in insertion order.
func (r *Repository) FindAllAssociations(ctx context.Context) ([]entities.Association, error) {
	query := `
		SELECT person_id, interest_id, created_at
		FROM person_interests
		ORDER BY rowid
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	assocs := make([]entities.Association, 0, 16)
	for rows.Next() {
		var a entities.Association
		if err := rows.Scan(&a.PersonID, &a.InterestID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		assocs = append(assocs, a)
	}
	return assocs, rows.Err()
}

// CountPeople returns the number of people.
func (r *Repository) CountPeople(ctx context.Context) (int, error) {
	return r.count(ctx, "people")
}

// CountInterests returns the number of interests.
func (r *Repository) CountInterests(ctx context.Context) (int, error) {
	return r.count(ctx, "interests")
}

// CountAssociations returns the number of edges.
func (r *Repository) CountAssociations(ctx context.Context) (int, error) {
	return r.count(ctx, "person_interests")
}

func (r *Repository) count(ctx context.Context, table string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
