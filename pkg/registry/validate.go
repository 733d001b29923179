package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/cim-modules/modgraph/pkg/errors"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so messages match what
// the user wrote in the document.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the structural requirements of a decoded document: a
// graph must be present and every edge needs both endpoints.
func Validate(doc *Document) error {
	if doc == nil {
		return errs.New(errs.ErrCodeInvalidDocument, "document is empty")
	}

	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(errs.ErrCodeInvalidDocument, err, "validate document")
	}

	fields := make(errs.FieldErrors, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, errs.FieldError{
			Field:  fieldPath(e),
			Reason: fieldReason(e),
		})
	}
	return errs.Wrap(errs.ErrCodeInvalidDocument, fields, "invalid document")
}

// fieldPath strips the Go type name from the validator namespace:
// "Document.graph.edges[0].from" becomes "graph.edges[0].from".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldReason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", e.Tag())
	}
}
