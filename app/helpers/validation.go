package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return IsImageURL(fl.Field().String())
	})
	return v
}

// IsImageURL accepts absolute http(s) URLs and root-relative paths such as
// the ones served from BLOB_PUBLIC_URL=/uploads.
func IsImageURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		_, err := url.ParseRequestURI(raw)
		return err == nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var fieldLabels = map[string]string{
	"name":          "نام",
	"title":         "عنوان",
	"slug":          "نامک",
	"description":   "توضیحات",
	"image":         "تصویر",
	"images":        "تصاویر",
	"link":          "لینک",
	"parentId":      "دسته‌بندی والد",
	"categoryId":    "دسته‌بندی",
	"values":        "مقادیر",
	"productId":     "محصول",
	"productName":   "نام محصول",
	"quantity":      "تعداد",
	"desiredPrice":  "قیمت پیشنهادی",
	"customerName":  "نام مشتری",
	"customerPhone": "شماره تلفن",
	"phone":         "شماره تلفن",
	"email":         "ایمیل",
	"password":      "رمز عبور",
	"status":        "وضعیت",
	"notes":         "توضیحات سفارش",
	"order":         "ترتیب نمایش",
	"inventory":     "موجودی",
	"price":         "قیمت",
}

func label(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		field = field[:i]
	}
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		if _, exists := errorMessages[field]; exists {
			continue
		}
		errorMessages[field] = validationMessage(err)
	}
	return errorMessages
}

func validationMessage(err validator.FieldError) string {
	l := label(err.Field())
	switch err.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s الزامی است", l)
	case "email":
		return fmt.Sprintf("%s معتبر نیست", l)
	case "url", "imageurl":
		return fmt.Sprintf("%s باید یک آدرس معتبر باشد", l)
	case "uuid", "uuid4":
		return fmt.Sprintf("شناسه %s معتبر نیست", l)
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s باید حداقل %s کاراکتر باشد", l, err.Param())
		}
		return fmt.Sprintf("%s باید حداقل %s باشد", l, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s نباید بیشتر از %s کاراکتر باشد", l, err.Param())
		}
		return fmt.Sprintf("%s نباید بیشتر از %s باشد", l, err.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s باید بیشتر از %s باشد", l, err.Param())
	case "oneof":
		return fmt.Sprintf("%s نامعتبر است", l)
	default:
		return fmt.Sprintf("%s نامعتبر است", l)
	}
}

// ValidateStruct runs v over dto and turns failures into a 400 AppError whose
// message is the first field's message.
func ValidateStruct(v *validator.Validate, dto interface{}) error {
	err := v.Struct(dto)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := FormatValidationErrors(validationErrs)
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: validationMessage(validationErrs[0]),
		Fields:  fields,
	}
}
