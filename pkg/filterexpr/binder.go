// Package filterexpr parses AIP-160 style filter and order_by strings into
// SQL-ready condition and order clauses. Filters are parsed as CEL
// expressions; only conjunctions of whitelisted field comparisons are
// accepted.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// FilterField whitelists one filterable field: the column it maps to and the
// operations callers may apply to it.
type FilterField struct {
	Column string
	Kind   ValueKind
	Ops    []Op
}

// OrderField maps an order key to a column.
type OrderField struct {
	Column string
}

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	Default     string
	DefaultDesc bool
	Tiebreak    string
	Fields      map[string]OrderField
}

// Schema aggregates filtering and ordering rules for a resource.
type Schema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}

// Condition is one parsed predicate. Value is a string, float64, time.Time
// or []string depending on the field kind and operation.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// OrderClause is one parsed ordering term.
type OrderClause struct {
	Column string
	Desc   bool
}

// Result holds everything parsed from a request's filter and order_by.
type Result struct {
	Conditions []Condition
	Order      []OrderClause
}

// Parse validates the raw filter and order_by strings against the schema.
func Parse(filter, orderBy string, schema Schema) (*Result, error) {
	conditions, err := parseFilter(filter, schema.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	order, err := parseOrderBy(orderBy, schema.Order)
	if err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}

	return &Result{Conditions: conditions, Order: order}, nil
}

func parseFilter(filter string, fields map[string]FilterField) ([]Condition, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	if len(fields) == 0 {
		return nil, errors.New("no filterable fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}

	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to convert AST: %w", err)
	}
	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return nil, err
	}

	conditions := make([]Condition, 0, len(conjuncts))
	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return nil, err
		}

		rule, ok := fields[pred.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", pred.Field)
		}
		if !opAllowed(rule.Ops, pred.Op) {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}
		if err := validateLiteral(rule.Kind, pred.Op, pred.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", pred.Field, err)
		}

		conditions = append(conditions, Condition{
			Column: rule.Column,
			Op:     pred.Op,
			Value:  pred.Value,
		})
	}

	return conditions, nil
}

func opAllowed(ops []Op, op Op) bool {
	for _, candidate := range ops {
		if candidate == op {
			return true
		}
	}
	return false
}

type atomicPredicate struct {
	Field string
	Op    Op
	Value any
}

func buildEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields))
	for name, rule := range fields {
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))

	// Nested AND chains come out of the parser as binary calls; they are
	// flattened in extractConjuncts.
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (atomicPredicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return atomicPredicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseBinaryPredicate(call, OpEQ)
	case "_>=_":
		return parseBinaryPredicate(call, OpGTE)
	case "_<=_":
		return parseBinaryPredicate(call, OpLTE)
	case "_in_", "@in":
		return parseInPredicate(call)
	case "startsWith":
		return parseStartsWith(call)
	default:
		return atomicPredicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseBinaryPredicate(call *exprpb.Expr_Call, op Op) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}

	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}

	return atomicPredicate{Field: fieldName, Op: op, Value: value}, nil
}

func parseInPredicate(call *exprpb.Expr_Call) (atomicPredicate, error) {
	var fieldExpr *exprpb.Expr
	var listExpr *exprpb.Expr

	if call.Target != nil {
		if len(call.Args) != 1 {
			return atomicPredicate{}, errors.New("in operator with receiver must have exactly one argument")
		}
		listExpr = call.Target
		fieldExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return atomicPredicate{}, errors.New("in operator expects two operands")
		}
		fieldExpr = call.Args[0]
		listExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(listExpr)
	if err != nil {
		return atomicPredicate{}, err
	}

	return atomicPredicate{Field: fieldName, Op: OpIN, Value: value}, nil
}

func parseStartsWith(call *exprpb.Expr_Call) (atomicPredicate, error) {
	var fieldExpr *exprpb.Expr
	var valueExpr *exprpb.Expr

	if call.Target != nil {
		if len(call.Args) != 1 {
			return atomicPredicate{}, errors.New("startsWith with receiver must have exactly one argument")
		}
		fieldExpr = call.Target
		valueExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return atomicPredicate{}, errors.New("startsWith must have exactly two arguments")
		}
		fieldExpr = call.Args[0]
		valueExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(valueExpr)
	if err != nil {
		return atomicPredicate{}, err
	}

	str, ok := value.(string)
	if !ok {
		return atomicPredicate{}, errors.New("startsWith requires a string literal argument")
	}

	return atomicPredicate{Field: fieldName, Op: OpSW, Value: str}, nil
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be an identifier")
	}
	return ident.GetName(), nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		switch constant.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return constant.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(constant.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(constant.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return constant.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
		}
	}

	if list := expr.GetListExpr(); list != nil {
		elements := list.GetElements()
		values := make([]string, len(elements))
		for i, elem := range elements {
			val, err := parseLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("list literal element %d: %w", i, err)
			}
			str, ok := val.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			values[i] = str
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if call.Target != nil || len(call.Args) != 1 {
			return nil, errors.New("timestamp() expects a single string argument")
		}
		arg := call.Args[0].GetConstExpr()
		if arg == nil {
			return nil, errors.New("timestamp() argument must be a string literal")
		}
		str := arg.GetStringValue()
		if str == "" {
			return nil, errors.New("timestamp() argument must not be empty")
		}
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("timestamp literal %q is not RFC3339", str)
		}
		return t, nil
	}

	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func validateLiteral(kind ValueKind, op Op, value any) error {
	if op == OpIN {
		if kind != KindString {
			return fmt.Errorf("in is only supported for string fields")
		}
		list, ok := value.([]string)
		if !ok {
			return errors.New("expected list of string literals")
		}
		if len(list) == 0 {
			return errors.New("list literal must not be empty")
		}
		for _, item := range list {
			if item == "" {
				return errors.New("list literal must not contain empty strings")
			}
		}
		return nil
	}

	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}
