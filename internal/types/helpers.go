package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

type requirement struct {
	path  string
	value any
}

func required(path string, value any) requirement {
	return requirement{path: path, value: value}
}

func requireAll(reqs ...requirement) error {
	var res []error

	for _, r := range reqs {
		if err := validate.Required(r.path, "body", r.value); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
