package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// writeServiceError maps service sentinels onto the HTTP status taxonomy.
// Anything unmapped is a dependency failure: logged server-side, opaque 500
// to the client.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		portalsdk.ErrValidation.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		portalsdk.ErrBadCredentials.WriteError(w)
	case errors.Is(err, service.ErrResetInvalid):
		portalsdk.ErrBadCredentials.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		portalsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrTenantNotFound):
		portalsdk.ErrTenantNotFound.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		portalsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrDuplicateEmail):
		portalsdk.ErrDuplicate.WriteError(w)
	case errors.Is(err, service.ErrProjectNotEditable),
		errors.Is(err, service.ErrSlugCollision):
		portalsdk.ErrConflict.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		portalsdk.ErrServer.WriteError(w)
	}
}
