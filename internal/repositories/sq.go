package repositories

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
)

var (
	SqBuilder     = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	SqliteBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
)

var ErrBadQuery = errors.New("bad query")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePrefix returns a LIKE pattern matching values that start with prefix.
func LikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
