package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

const documentsTable = "documents"

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// psql билдер с плейсхолдерами $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore хранит документы строками таблицы documents.
// Семантика та же, что у FileStore: документ читается и пишется целиком.
type PostgresStore struct {
	db DBExecutor
}

// NewPostgresStore создает хранилище поверх открытого соединения
func NewPostgresStore(db DBExecutor) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создает таблицу documents, если её нет
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrSave, err)
	}
	return nil
}

func buildLoadQuery(name string) (string, []interface{}, error) {
	return psql.Select("data").
		From(documentsTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
}

func buildSaveQuery(name string, data []byte) (string, []interface{}, error) {
	return psql.Insert(documentsTable).
		Columns("name", "data", "updated_at").
		Values(name, string(data), squirrel.Expr("now()")).
		Suffix("ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
}

// Load возвращает nil, если строки с таким именем нет
func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	query, args, err := buildLoadQuery(name)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var data []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: Load %s: %v", ErrLoad, name, err)
	}
	return data, nil
}

// Save делает upsert одной строкой, поэтому перезапись атомарна
func (s *PostgresStore) Save(ctx context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	query, args, err := buildSaveQuery(name, data)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save %s: %v", ErrSave, name, err)
	}
	return nil
}
