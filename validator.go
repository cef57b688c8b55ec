package storage

import "errors"

func (o *SelectOptions) validate() error {
	if o.Offset < 0 {
		return errors.New("offset cannot be negative")
	}

	if o.Offset > 0 && o.Limit <= 0 {
		return errors.New("offset requires a limit")
	}
	return nil
}
