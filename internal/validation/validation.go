// Package validation checks request structs against their `binding` tags, the
// tags gin evaluates when it binds a request body, and turns each failure into
// a localized field message.
package validation

import (
	"errors"
	"reflect"
	"smartsociety/backend/internal/localization"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	// Report fields under their JSON names, as clients send them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Messages maps "field.tag" to the message shown when that rule fails. A bare
// "field" entry covers every other rule of the field.
type Messages map[string]localization.Message

func (m Messages) lookup(field, tag string) localization.Message {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return localization.NewMessage("validation.invalid")
}

// Struct validates s and returns one message per invalid field. The map is
// empty, never nil, when s is valid.
func Struct(s interface{}, msgs Messages) map[string]localization.Message {
	fields := make(map[string]localization.Message)
	if err := validate.Struct(s); err != nil {
		if !Collect(err, msgs, fields) {
			fields[""] = localization.NewMessage("validation.invalid")
		}
	}
	return fields
}

// Collect adds the failures in err to fields, keeping the first failure of
// each field. It reports false when err is not a validation failure.
func Collect(err error, msgs Messages, fields map[string]localization.Message) bool {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return false
	}
	for _, fe := range failures {
		name := fe.Field()
		// Element failures of a slice are reported on the slice itself.
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = msgs.lookup(name, fe.Tag())
	}
	return true
}

// IsFailure reports whether err came from tag validation rather than from
// decoding the request.
func IsFailure(err error) bool {
	var failures validator.ValidationErrors
	return errors.As(err, &failures)
}

// Email reports whether s is a well-formed email address.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}
