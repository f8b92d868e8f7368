package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports missing fields under their form names, not Go struct
// field names, so validation flashes match what the user actually filled in.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

type registerForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required"`
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
}

type eventForm struct {
	Name        string `form:"event_name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Time        string `form:"event_time" validate:"required"`
	Location    string `form:"location" validate:"required"`
}

func parseEventForm(r *http.Request) eventForm {
	return eventForm{
		Name:        r.PostFormValue("event_name"),
		Description: r.PostFormValue("description"),
		Time:        r.PostFormValue("event_time"),
		Location:    r.PostFormValue("location"),
	}
}

// missingFieldsMessage turns a validation error into the flash text listing
// the absent form fields. Returns "" when err carries no field errors.
func missingFieldsMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Missing required fields: " + strings.Join(fields, ", ") + "."
}
