package store

import (
	"os"

	sq "github.com/Masterminds/squirrel"
)

// debugSQL turns on pretty-printed dumps of write payloads.
var debugSQL = os.Getenv("ECSRS_DEBUG_SQL") != ""

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
