package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the date format accepted in run requests.
const DateLayout = "2006-01-02"

// Request describes one coverage run as submitted by a front end.
type Request struct {
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	EvenDay bool     `json:"even_day"`
	Out     []string `json:"out" validate:"dive,required"`
	// Preferences overrides the time preference of absent staff by name.
	Preferences map[string]string `json:"preferences" validate:"dive,keys,required,endkeys,oneof=am pm morning afternoon none"`
	// RosterPath overrides the configured schedule for this run. It is set
	// by the command line only and never decoded from a request body.
	RosterPath string `json:"-"`
	Sheet      string `json:"-"`
}

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request fields.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
