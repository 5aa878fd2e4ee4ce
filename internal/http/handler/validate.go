package handler

import (
	"fmt"
	"strconv"
)

// boundedInt parses raw as an integer within [lo, hi]; an empty raw yields def.
// source and name form the error location, e.g. ("query", "limit").
func boundedInt(source, name, raw string, def, lo, hi int64) (int64, *fieldError) {
	if raw == "" {
		return def, nil
	}
	loc := []string{source, name}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &fieldError{Loc: loc, Msg: "value is not a valid integer", Type: "int_parsing"}
	}
	if v < lo {
		return 0, &fieldError{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is greater than or equal to %d", lo),
			Type: "greater_than_equal",
		}
	}
	if v > hi {
		return 0, &fieldError{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is less than or equal to %d", hi),
			Type: "less_than_equal",
		}
	}
	return v, nil
}

func missingField(source, name string) fieldError {
	return fieldError{Loc: []string{source, name}, Msg: "field required", Type: "missing"}
}
