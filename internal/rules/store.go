package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/crumbsapp/crumbs/internal/cleanup"
	_ "modernc.org/sqlite"
)

var (
	// ErrRuleNotFound is returned when no rule has the requested expression.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrRuleExists is returned when adding a rule whose expression is taken
	// and replacing was not requested.
	ErrRuleExists = errors.New("rule exists")
)

// Option keys stored next to the rules.
const (
	OptionFallbackType        = "fallbackRule"
	OptionWhitelistNoTLD      = "whitelistNoTLD"
	OptionWhitelistFileSystem = "whitelistFileSystem"
)

// Store persists rules and options.
type Store interface {
	List(ctx context.Context) ([]Rule, error)
	Get(ctx context.Context, expression string) (Rule, error)
	Put(ctx context.Context, r Rule) error
	Delete(ctx context.Context, expression string) error
	ClearTemporary(ctx context.Context) (int64, error)
	Option(ctx context.Context, key string) (string, bool, error)
	SetOption(ctx context.Context, key, value string) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS rules (
    expression TEXT PRIMARY KEY,
    type       TEXT NOT NULL,
    temporary  INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS options (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (and creates if needed) the rule database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error: cannot open rule database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error: cannot initialize rule database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// List returns all rules ordered by expression.
func (s *SQLiteStore) List(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT expression, type, temporary FROM rules ORDER BY expression ASC`)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query rules: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate rules: %w", err)
	}
	return out, nil
}

// Get returns the rule stored under the normalized expression.
func (s *SQLiteStore) Get(ctx context.Context, expression string) (Rule, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT expression, type, temporary FROM rules WHERE expression = ?`,
		NormalizeExpression(expression))
	r, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Rule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, expression)
	}
	return r, err
}

// Put inserts a rule or replaces the rule with the same expression.
func (s *SQLiteStore) Put(ctx context.Context, r Rule) error {
	expr, err := ParseExpression(r.Expression)
	if err != nil {
		return err
	}
	if !r.Type.Valid() {
		return fmt.Errorf("rule %q: %w", r.Expression, cleanup.ErrUnknownType)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rules (expression, type, temporary, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(expression) DO UPDATE SET
            type = excluded.type,
            temporary = excluded.temporary,
            updated_at = excluded.updated_at
    `, expr.Raw, r.Type.String(), boolToInt(r.Temporary), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("error: failed to save rule: %w", err)
	}
	return nil
}

// Delete removes the rule with the given expression.
func (s *SQLiteStore) Delete(ctx context.Context, expression string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rules WHERE expression = ?`, NormalizeExpression(expression))
	if err != nil {
		return fmt.Errorf("error: failed to delete rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error: failed to delete rule: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, expression)
	}
	return nil
}

// ClearTemporary deletes all temporary rules and returns how many were removed.
func (s *SQLiteStore) ClearTemporary(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rules WHERE temporary != 0`)
	if err != nil {
		return 0, fmt.Errorf("error: failed to clear temporary rules: %w", err)
	}
	return res.RowsAffected()
}

// Option returns a stored option value. ok is false when the option was never set.
func (s *SQLiteStore) Option(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error: failed to read option %s: %w", key, err)
	}
	return value, true, nil
}

// SetOption stores an option value.
func (s *SQLiteStore) SetOption(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO options (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `, key, value)
	if err != nil {
		return fmt.Errorf("error: failed to save option %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (Rule, error) {
	var (
		expression, typ string
		temporary       int
	)
	if err := row.Scan(&expression, &typ, &temporary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rule{}, err
		}
		return Rule{}, fmt.Errorf("error: failed to scan rule row: %w", err)
	}
	t, err := cleanup.ParseType(typ)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", expression, err)
	}
	return Rule{Expression: expression, Type: t, Temporary: temporary != 0}, nil
}

// Load builds a Settings snapshot from the rules and options in store.
// Options that were never stored keep their DefaultOptions value.
func Load(ctx context.Context, store Store) (*Settings, error) {
	rules, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if v, ok, err := store.Option(ctx, OptionFallbackType); err != nil {
		return nil, err
	} else if ok {
		if opts.FallbackType, err = cleanup.ParseType(v); err != nil {
			return nil, fmt.Errorf("option %s: %w", OptionFallbackType, err)
		}
	}
	for key, dst := range map[string]*bool{
		OptionWhitelistNoTLD:      &opts.WhitelistNoTLD,
		OptionWhitelistFileSystem: &opts.WhitelistFileSystem,
	} {
		v, ok, err := store.Option(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("option %s: %w", key, err)
		}
	}
	return NewSettings(rules, opts)
}

// SaveOptions stores opts in store.
func SaveOptions(ctx context.Context, store Store, opts Options) error {
	if !opts.FallbackType.Valid() {
		return fmt.Errorf("invalid fallback type: %w", cleanup.ErrUnknownType)
	}
	for key, value := range map[string]string{
		OptionFallbackType:        opts.FallbackType.String(),
		OptionWhitelistNoTLD:      strconv.FormatBool(opts.WhitelistNoTLD),
		OptionWhitelistFileSystem: strconv.FormatBool(opts.WhitelistFileSystem),
	} {
		if err := store.SetOption(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
