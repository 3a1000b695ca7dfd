package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

// parseOrderBy turns a raw "key [asc|desc], key [asc|desc]" string into
// concrete order clauses. The schema's tiebreak key is appended when absent
// so ordering stays deterministic.
func parseOrderBy(raw string, schema OrderSchema) ([]OrderClause, error) {
	if schema.Default == "" || schema.Tiebreak == "" {
		return nil, errors.New("order schema requires a default and a tiebreak key")
	}
	defaultField, ok := schema.Fields[schema.Default]
	if !ok {
		return nil, fmt.Errorf("default order key %q missing from schema fields", schema.Default)
	}
	tiebreakField, ok := schema.Fields[schema.Tiebreak]
	if !ok {
		return nil, fmt.Errorf("tiebreak order key %q missing from schema fields", schema.Tiebreak)
	}

	var clauses []OrderClause
	seen := make(map[string]struct{})

	raw = strings.TrimSpace(raw)
	if raw == "" {
		clauses = append(clauses, OrderClause{Column: defaultField.Column, Desc: schema.DefaultDesc})
		seen[schema.Default] = struct{}{}
	} else {
		for _, seg := range strings.Split(raw, ",") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}

			parts := strings.Fields(seg)
			key := parts[0]
			field, ok := schema.Fields[key]
			if !ok {
				return nil, fmt.Errorf("field %q cannot be used for ordering", key)
			}

			var desc bool
			switch len(parts) {
			case 1:
			case 2:
				switch strings.ToLower(parts[1]) {
				case "asc":
				case "desc":
					desc = true
				default:
					return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
				}
			default:
				return nil, fmt.Errorf("invalid order segment %q", seg)
			}

			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("duplicate order key %q", key)
			}
			seen[key] = struct{}{}

			clauses = append(clauses, OrderClause{Column: field.Column, Desc: desc})
		}
		if len(clauses) == 0 {
			clauses = append(clauses, OrderClause{Column: defaultField.Column, Desc: schema.DefaultDesc})
			seen[schema.Default] = struct{}{}
		}
		if len(clauses) > 2 {
			return nil, errors.New("order_by supports at most two keys")
		}
	}

	if _, ok := seen[schema.Tiebreak]; !ok {
		clauses = append(clauses, OrderClause{Column: tiebreakField.Column})
	}

	return clauses, nil
}
