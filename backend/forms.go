package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

// decodeForm parses the POST body into dst and validates it.
func decodeForm(req *http.Request, dst interface{}) error {
	if err := req.ParseForm(); err != nil {
		return err
	}
	if err := decoder.Decode(dst, req.PostForm); err != nil {
		return err
	}
	return validationError(validate.Struct(dst))
}

// validationError turns validator errors into a readable message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var msgs = make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid input (%s)", strings.Join(msgs, ", "))
}
