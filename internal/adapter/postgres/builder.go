package postgres

import sq "github.com/Masterminds/squirrel"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Builder returns a squirrel statement builder using $N placeholders.
func Builder() sq.StatementBuilderType {
	return psql
}
