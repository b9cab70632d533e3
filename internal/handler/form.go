package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// multipart/form-data の読み取り。型が合わない項目は422用にためておく。
type formReader struct {
	form *multipart.Form
	errs *validator.Error
}

func newFormReader(c echo.Context) (*formReader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return &formReader{form: form, errs: &validator.Error{}}, nil
}

func (r *formReader) fail(name string, msg string) {
	if r.errs.Fields == nil {
		r.errs.Fields = map[string][]string{}
	}
	r.errs.Fields[name] = append(r.errs.Fields[name], msg)
}

func (r *formReader) value(name string) (string, bool) {
	vs, ok := r.form.Value[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (r *formReader) str(name string) string {
	v, _ := r.value(name)
	return v
}

func (r *formReader) optStr(name string) *string {
	v, ok := r.value(name)
	if !ok {
		return nil
	}
	return &v
}

func (r *formReader) int64(name string) int64 {
	v, ok := r.value(name)
	if !ok || v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(name, fmt.Sprintf("The %s field must be an integer.", name))
	}
	return n
}

func (r *formReader) optInt(name string) *int {
	v, ok := r.value(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, fmt.Sprintf("The %s field must be an integer.", name))
		return nil
	}
	return &n
}

func (r *formReader) optDecimal(name string) *decimal.Decimal {
	v, ok := r.value(name)
	if !ok || v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(name, fmt.Sprintf("The %s field must be a number.", name))
		return nil
	}
	return &d
}

// "category_ids[]" / "category_ids" の繰り返し、またはJSON配列
func (r *formReader) int64s(name string) []int64 {
	vs := append(append([]string{}, r.form.Value[name+"[]"]...), r.form.Value[name]...)
	if len(vs) == 0 {
		return nil
	}
	if len(vs) == 1 && strings.HasPrefix(strings.TrimSpace(vs[0]), "[") {
		var ids []int64
		if err := json.Unmarshal([]byte(vs[0]), &ids); err != nil {
			r.fail(name, fmt.Sprintf("The %s field must be an array of integers.", name))
		}
		return ids
	}

	ids := make([]int64, 0, len(vs))
	for _, v := range vs {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.fail(name, fmt.Sprintf("The %s field must be an array of integers.", name))
			return nil
		}
		ids = append(ids, n)
	}
	return ids
}

// JSON文字列で送られた項目
func (r *formReader) jsonValue(name string, dst interface{}) {
	v, ok := r.value(name)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		r.fail(name, fmt.Sprintf("The %s field must be valid JSON.", name))
	}
}

func (r *formReader) file(name string) *usecase.Upload {
	fhs := r.form.File[name]
	if len(fhs) == 0 {
		return nil
	}
	return uploadFrom(fhs[0])
}

func (r *formReader) err() error {
	if len(r.errs.Fields) > 0 {
		return r.errs
	}
	return nil
}

func uploadFrom(fh *multipart.FileHeader) *usecase.Upload {
	return &usecase.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
