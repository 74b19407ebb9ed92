package valid

import (
	"net/http"
	"regexp"
	"strings"

	"gopkg.in/validator.v2"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/model"
)

// nolint
var _emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,14}$`)

// Email returns email trimmed and lower cased, or an error if it does not
// look like an address.
func Email(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if _emailRe.MatchString(email) {
		return email, nil
	}

	return "", errors.E(
		errors.Opf("valid.Email(%q)", email),
		errors.Str("invalid email"),
		http.StatusBadRequest)
}

// Recipient checks that u can be sent mail and normalizes its address.
func Recipient(u *model.User) error {
	op := errors.Opf("valid.Recipient(id=%q)", u.ID)

	r := struct {
		ID    string `validate:"nonzero"`
		Email string `validate:"nonzero"`
	}{u.ID, u.Email}

	if err := validator.Validate(r); err != nil {
		return errors.E(op, normalizeErrors(err), http.StatusBadRequest, err)
	}

	email, err := Email(u.Email)
	if err != nil {
		return errors.E(op, map[string]string{"email": "This is not a valid email"}, err)
	}

	u.Email = email

	return nil
}

func normalizeErrors(e error) map[string]string {
	normalized := make(map[string]string)

	errs, ok := e.(validator.ErrorMap)
	if !ok {
		return map[string]string{"message": "Nope"}
	}

	for field, errs := range errs {
		err := errs[0] // Take just the first error

		switch err {
		case validator.ErrZeroValue:
			normalized[lowerFirstLetter(field)] = "This field is required"
		case validator.ErrMin:
			normalized[lowerFirstLetter(field)] = "This is too short"
		case validator.ErrMax:
			normalized[lowerFirstLetter(field)] = "This is too long"
		default:
			normalized[lowerFirstLetter(field)] = "Nope"
		}
	}

	return normalized
}

func lowerFirstLetter(s string) string {
	if s == "ID" {
		return "id"
	}

	if r := rune(s[0]); r >= 'A' && r <= 'Z' {
		s = strings.ToLower(string(r)) + s[1:]
	}

	if len(s) >= 2 && s[len(s)-2:] == "ID" {
		s = s[:len(s)-2] + "Id"
	}

	return s
}
