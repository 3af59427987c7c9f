package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"example.com/fieldops/internal/infra/backend"
)

type formField struct {
	Name    string
	Label   string
	Type    string
	Options []string
	Value   string
	Error   string
}

// createForm declares the create page of a list. In is the request body
// posted to the backend.
type createForm[T, In any] struct {
	title  string
	fields []formField
}

type formBody struct {
	Title      string
	Action     string
	Error      string
	Fields     []formField
	CancelHref string
}

func (f createForm[T, In]) body(pg listPage[T], values url.Values, errs map[string]string, msg string) formBody {
	fields := make([]formField, len(f.fields))
	for i, fld := range f.fields {
		fld.Value = values.Get(fld.Name)
		fld.Error = errs[fld.Name]
		fields[i] = fld
	}
	return formBody{
		Title:      f.title,
		Action:     pg.path,
		Error:      msg,
		Fields:     fields,
		CancelHref: pg.path,
	}
}

func serveNew[T, In any](a *API, pg listPage[T], form createForm[T, In]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.render(w, r, http.StatusOK, "form", pageData{
			Title: form.title,
			Body:  form.body(pg, url.Values{}, nil, ""),
		})
	}
}

func serveCreate[T, In any](a *API, pg listPage[T], form createForm[T, In]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			a.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
			return
		}

		var in In
		errs := decodeForm(r.PostForm, &in)
		if len(errs) == 0 {
			errs = fieldErrors(a.validator.Struct(in))
		}
		if len(errs) > 0 {
			a.render(w, r, http.StatusUnprocessableEntity, "form", pageData{
				Title: form.title,
				Body:  form.body(pg, r.PostForm, errs, "Please fix the highlighted fields."),
			})
			return
		}

		sess := sessionFrom(r.Context())
		if _, err := backend.Create[T](r.Context(), a.backend.As(sess.Token), pg.endpoint, in); err != nil {
			var apiErr *backend.APIError
			if errors.Is(err, backend.ErrValidation) && errors.As(err, &apiErr) {
				msg := apiErr.Message
				if msg == "" {
					msg = "The record was rejected."
				}
				a.render(w, r, http.StatusUnprocessableEntity, "form", pageData{
					Title: form.title,
					Body:  form.body(pg, r.PostForm, nil, msg),
				})
				return
			}
			a.handlePageError(w, r, err)
			return
		}

		viewFor(a, sess, pg).PurgeCache()
		http.Redirect(w, r, pg.path+"?created=1", http.StatusSeeOther)
	}
}

// decodeForm copies form values into the fields of dst by json tag. It
// returns the fields whose value could not be parsed.
func decodeForm(values url.Values, dst any) map[string]string {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	errs := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.String:
			// passwords are kept verbatim
			if name == "password" {
				fv.SetString(values.Get(name))
			} else {
				fv.SetString(raw)
			}
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs[name] = "must be a whole number"
				continue
			}
			fv.SetInt(n)
		case reflect.Float32, reflect.Float64:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs[name] = "must be a number"
				continue
			}
			fv.SetFloat(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				errs[name] = "must be yes or no"
				continue
			}
			fv.SetBool(b)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// fieldErrors maps validator failures to messages keyed by json field name.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
