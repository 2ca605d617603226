package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate  = newValidator()
	ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Usar el nombre JSON en los errores para que el frontend marque el campo correcto.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return ifscRegex.MatchString(fl.Field().String())
	})
	return v
}

// ValidationError agrupa los campos inválidos de un DTO.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos: " + strings.Join(e.Fields, ", ")
}

// Validate ejecuta las reglas `validate:"..."` del DTO.
// Devuelve *ValidationError con la lista de campos (nombre JSON) que fallaron.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldPath(fe.Namespace()))
	}
	return &ValidationError{Fields: fields}
}

// fieldPath quita el nombre del struct raíz: "CreateDocumentRequest.lines[0].quantity" → "lines[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
