package dbx

import (
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// TableName validates a configurable table name and returns it quoted for
// use in SQL text. Only plain identifiers are accepted.
func TableName(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}
