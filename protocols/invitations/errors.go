package invitations

import (
	"github.com/goliatone/go-admin-toolbox/core"
	goerrors "github.com/goliatone/go-errors"
)

func dependencyError(message string) error {
	return core.NewError(message, goerrors.CategoryInternal, core.ErrorInternal)
}
