package query

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
)

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	int64Type   = reflect.TypeOf(int64(0))
	stringType  = reflect.TypeOf("")

	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// decodeRecord turns one warehouse record into T. Every projected column must be
// present and non-null; keys are matched case-insensitively.
func decodeRecord[T any](table types.TableRef, index int, record map[string]any, columns []string) (T, error) {
	var out T

	normalized := make(map[string]any, len(record))
	for key, value := range record {
		normalized[strings.ToUpper(strings.TrimSpace(key))] = indirect(value)
	}

	for _, column := range columns {
		value, ok := normalized[column]
		if !ok {
			return out, schemaError(table, index, column, fmt.Errorf("column %s missing from result", column))
		}
		if value == nil {
			return out, schemaError(table, index, column, fmt.Errorf("column %s is null", column))
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "warehouse",
		ErrorUnset: true,
		DecodeHook: warehouseValueHook,
		Result:     &out,
	})
	if err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building record decoder")
	}
	if err := decoder.Decode(normalized); err != nil {
		return out, schemaError(table, index, "", err)
	}

	if err := types.Validate(out); err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeSchemaMismatch, err, "row failed validation").
			WithDetails(map[string]any{
				"table":  table.String(),
				"row":    index,
				"fields": types.FieldErrors(err),
			})
	}
	return out, nil
}

func schemaError(table types.TableRef, index int, column string, err error) error {
	details := map[string]any{
		"table": table.String(),
		"row":   index,
	}
	if column != "" {
		details["column"] = column
	}
	return pkgerrors.Wrap(pkgerrors.CodeSchemaMismatch, err, "unexpected warehouse row shape").WithDetails(details)
}

// indirect unwraps pointers the SQL drivers hand back; nil pointers become nil.
func indirect(value any) any {
	if _, ok := value.(*big.Rat); ok {
		return value
	}
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// warehouseValueHook converts driver values into row field types. Anything it cannot
// convert exactly is an error: no bool coercion, no fractional or out-of-range counts.
func warehouseValueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case decimalType:
		return toDecimal(data)
	case int64Type:
		return toInt64(data)
	case stringType:
		switch v := data.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		default:
			return nil, fmt.Errorf("expected text, got %T", data)
		}
	}
	return data, nil
}

func toInt64(data any) (int64, error) {
	switch v := data.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	}
	d, err := toDecimal(data)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%s is not a whole number", d.String())
	}
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0, fmt.Errorf("%s overflows int64", d.String())
	}
	return d.IntPart(), nil
}

func toDecimal(data any) (decimal.Decimal, error) {
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case *big.Rat:
		if v == nil {
			return decimal.Decimal{}, fmt.Errorf("nil numeric value")
		}
		return decimal.NewFromString(v.FloatString(9))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, fmt.Errorf("non-finite value %v", v)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, fmt.Errorf("non-finite value %v", v)
		}
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(v)))
	default:
		return decimal.Decimal{}, fmt.Errorf("cannot convert %T to a decimal", data)
	}
}
