package sqlplan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxID is the largest identifier accepted in a query.
const MaxID = 1<<53 - 1

// ErrIdentifier is returned for identifiers out of [0, MaxID].
var ErrIdentifier = errors.New("identifier out of range")

// Integer is the set of identifier types.
type Integer interface {
	~int | ~int32 | ~int64
}

// ID returns the SQL literal of an identifier.
func ID[T Integer](v T) (string, error) {
	if int64(v) < 0 || int64(v) > MaxID {
		return "", fmt.Errorf("%w: %d", ErrIdentifier, int64(v))
	}
	return strconv.FormatInt(int64(v), 10), nil
}

// IDs returns the comma separated literals of identifiers, to be used in an
// IN list. An empty list is an error: an empty IN list is not valid SQL.
func IDs[T Integer](vs []T) (string, error) {
	if len(vs) == 0 {
		return "", fmt.Errorf("%w: empty list", ErrIdentifier)
	}
	lits := make([]string, len(vs))
	for i, v := range vs {
		lit, err := ID(v)
		if err != nil {
			return "", err
		}
		lits[i] = lit
	}
	return strings.Join(lits, ","), nil
}
