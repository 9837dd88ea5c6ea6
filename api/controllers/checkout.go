package controllers

import (
	"net/http"

	"github.com/steno/caribbean-tees-pod/api/responses"
	"github.com/steno/caribbean-tees-pod/api/validators"
	"github.com/steno/caribbean-tees-pod/internal/checkout"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

// CreateCheckoutSession turns posted cart items into a hosted payment
// session and returns its id and redirect URL.
func CreateCheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.CreateSession(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
