package postgres

import (
	"context"
	"fmt"

	"github.com/dataiesb/pnaes"
)

// Inspect samples one row from each named table and records the columns it
// finds. A failure on one table is recorded as that table's probe and never
// aborts the rest.
func (r *Repo) Inspect(ctx context.Context, tables []string) map[string]pnaes.TableProbe {
	probes := make(map[string]pnaes.TableProbe, len(tables))

	for _, table := range tables {
		probes[table] = r.inspectTable(ctx, table)
	}

	return probes
}

func (r *Repo) inspectTable(ctx context.Context, table string) pnaes.TableProbe {
	if !pnaes.IsValidTableName(table) {
		return pnaes.TableProbe{Error: fmt.Sprintf("invalid table name: %s", table)}
	}

	query := fmt.Sprintf(`SELECT * FROM %s LIMIT 1`, quoteIdent(table))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return pnaes.TableProbe{Error: err.Error()}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var sample []string
	if rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return pnaes.TableProbe{Error: err.Error()}
		}
		sample = make([]string, len(values))
		for i, v := range values {
			sample[i] = fmt.Sprint(v)
		}
	}

	if err := rows.Err(); err != nil {
		return pnaes.TableProbe{Error: err.Error()}
	}

	return pnaes.TableProbe{Columns: columns, Sample: sample}
}
