package namespace

import (
	"errors"

	"github.com/cuemby/chainsaw/pkg/kv"
)

// asConflict returns err if it wraps kv.ErrConflict, nil otherwise. Used by
// classifyUpdateErr to map a substrate-level wait-timeout into KindConflict
// rather than the catch-all KindIo.
func asConflict(err error) error {
	if errors.Is(err, kv.ErrConflict) {
		return err
	}
	return nil
}
