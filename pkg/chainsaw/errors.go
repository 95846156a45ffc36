package chainsaw

import (
	"errors"

	"github.com/cuemby/chainsaw/pkg/errs"
)

// Kind, Error, and KindOf are re-exported from pkg/errs so both this
// package and pkg/namespace can build errors without an import cycle
// (chainsaw.DB.OpenNamespace returns *namespace.Namespace, so namespace
// cannot import chainsaw).
type Kind = errs.Kind

const (
	KindIo               = errs.Io
	KindEncoding         = errs.Encoding
	KindConflict         = errs.Conflict
	KindBadNamespaceName = errs.BadNamespaceName
	KindNotFound         = errs.NotFound
	KindNamespaceClosed  = errs.NamespaceClosed
	KindAlreadyExists    = errs.AlreadyExists
)

type Error = errs.Error

// KindOf extracts the Kind carried by err, if any.
func KindOf(err error) (Kind, bool) { return errs.KindOf(err) }

// ErrBadNamespaceName is a plain sentinel for callers that want a bare
// errors.Is check (e.g. reserved-name validation at OpenNamespace) without
// unwrapping an *Error.
var ErrBadNamespaceName = errors.New("chainsaw: reserved namespace name")
