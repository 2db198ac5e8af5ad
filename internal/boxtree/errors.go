package boxtree

import "github.com/go-errors/errors"

func unknownLayoutError(id string) error {
	return errors.Errorf("unknown layout %q", id)
}
