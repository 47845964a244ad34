package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniquenessRepository answers uniqueness constraints of validation rule sets.
// It implements validation.UniqueChecker.
type UniquenessRepository struct {
	pool *pgxpool.Pool
}

func NewUniquenessRepository(pool *pgxpool.Pool) *UniquenessRepository {
	return &UniquenessRepository{pool: pool}
}

var _ validation.UniqueChecker = (*UniquenessRepository)(nil)

// Exists reports whether value is already stored in rule.Table.rule.Column,
// not counting the row ignored by the rule.
func (r *UniquenessRepository) Exists(ctx context.Context, rule validation.UniqueRule, value any) (bool, error) {
	query, args := buildExistsQuery(rule, value)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking %s.%s uniqueness: %w", rule.Table, rule.Column, err)
	}

	return exists, nil
}

// buildExistsQuery renders the lookup for rule. Table and column names come
// from rule sets, never from user input, and are quoted anyway.
func buildExistsQuery(rule validation.UniqueRule, value any) (string, []any) {
	var b strings.Builder
	args := []any{value}

	fmt.Fprintf(&b, "SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1",
		pgx.Identifier{rule.Table}.Sanitize(),
		pgx.Identifier{rule.Column}.Sanitize(),
	)

	if rule.Ignores() {
		column := rule.IgnoreColumn
		if column == "" {
			column = "id"
		}
		fmt.Fprintf(&b, " AND %s <> $2", pgx.Identifier{column}.Sanitize())
		args = append(args, *rule.IgnoreID)
	}

	b.WriteString(")")

	return b.String(), args
}
