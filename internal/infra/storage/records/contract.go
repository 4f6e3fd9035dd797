package records

import (
	"context"
	"database/sql"
)

// Store хранилище именованных JSON-документов.
// Документ всегда читается и пишется целиком.
type Store interface {
	// Load возвращает содержимое документа или nil, если документа нет
	Load(ctx context.Context, name string) ([]byte, error)
	// Save атомарно перезаписывает документ целиком
	Save(ctx context.Context, name string, data []byte) error
}

// DBExecutor минимальный интерфейс БД, который реализует *sql.DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
