package repository

import "strings"

// KeyValueRepository is the local key-value storage behind the table
// library, the credential map and the current-user marker
type KeyValueRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

// LikePrefix escapes prefix for use in `LIKE ? ESCAPE '\'` and appends the wildcard
func LikePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
