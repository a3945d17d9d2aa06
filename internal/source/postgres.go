package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool and pgx.Tx used for loading.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ErrUnknownTable is returned when the source table does not exist.
var ErrUnknownTable = errors.New("unknown table")

// undefinedTable is the Postgres SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// LoadPostgres reads table into a Table. With no columns every column is
// selected and the header comes from the result's field descriptions.
func LoadPostgres(ctx context.Context, q Querier, table string, columns []string) (*Table, error) {
	sql, err := selectStatement(table, columns)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
		}
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	t := &Table{}
	for _, fd := range rows.FieldDescriptions() {
		t.Header = append(t.Header, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = FormatCell(v)
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
		}
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	return t, nil
}

// selectStatement builds the SELECT for table, quoting every identifier.
// A schema-qualified name ("billing.invoices") is quoted per part.
func selectStatement(table string, columns []string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownTable)
	}

	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = pgx.Identifier{c}.Sanitize()
		}
		cols = strings.Join(quoted, ", ")
	}

	return fmt.Sprintf("SELECT %s FROM %s", cols, pgx.Identifier(strings.Split(table, ".")).Sanitize()), nil
}
