package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// 422 で返す入力エラー（フィールド -> メッセージ）
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func (e *Error) add(field string, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *Error) has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

// DBを見るルール（exists / unique など）。ok=false で Message を積む。
type Rule struct {
	Field   string
	Message string
	Check   func(ctx context.Context) (bool, error)
}

// 構造体タグのチェック + DBルールの入口
type Validator struct {
	v *validator.Validate
}

// DI
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーのフィールド名はjsonタグ
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// decimalは数値として比較する
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{v: v}
}

// タグ → ルールの順にチェック。入力エラーは *Error、DBエラーはそのまま返す。
// フィールドが既にタグで落ちていればそのフィールドのルールは実行しない。
func (v *Validator) Gate(ctx context.Context, in interface{}, rules ...Rule) error {
	ve := &Error{}
	if in != nil {
		v.collect(in, ve)
	}

	for _, r := range rules {
		if ve.has(r.Field) {
			continue
		}
		ok, err := r.Check(ctx)
		if err != nil {
			return err
		}
		if !ok {
			ve.add(r.Field, r.Message)
		}
	}

	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (v *Validator) collect(in interface{}, ve *Error) {
	err := v.v.Struct(in)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.add("_", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		ve.add(field, message(field, fe))
	}
}

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

// "productStoreRequest.details[0].size" -> "details.0.size"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return indexRe.ReplaceAllString(ns, ".$1")
}

func message(field string, fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s field must have at least %s items.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// よく使うルール

// 参照先の行が存在すること
func Exists(field string, check func(ctx context.Context) (bool, error)) Rule {
	return Rule{
		Field:   field,
		Message: fmt.Sprintf("The selected %s is invalid.", field),
		Check:   check,
	}
}

// 他の行で使われていないこと
func Unique(field string, taken func(ctx context.Context) (bool, error)) Rule {
	return Rule{
		Field:   field,
		Message: fmt.Sprintf("The %s has already been taken.", field),
		Check: func(ctx context.Context) (bool, error) {
			t, err := taken(ctx)
			return !t, err
		},
	}
}

// 値があること（ファイル or 参照文字列など構造体タグで表せないもの）
func Present(field string, present bool) Rule {
	return Rule{
		Field:   field,
		Message: fmt.Sprintf("The %s field is required.", field),
		Check: func(context.Context) (bool, error) {
			return present, nil
		},
	}
}

// 任意の条件
func Must(field string, ok bool, msg string) Rule {
	return Rule{
		Field:   field,
		Message: msg,
		Check: func(context.Context) (bool, error) {
			return ok, nil
		},
	}
}
