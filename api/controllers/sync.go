package controllers

import (
	"context"
	"net/http"

	"github.com/steno/caribbean-tees-pod/api/responses"
	"github.com/steno/caribbean-tees-pod/internal/catalog"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

type catalogSyncer interface {
	Run(ctx context.Context, trigger string) (*catalog.Report, error)
}

// TriggerSync runs a catalog sync pass inline and returns its report.
// Per-product failures are part of the report, not an error response.
func TriggerSync(svc catalogSyncer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sync service unavailable"))
			return
		}

		report, err := svc.Run(ctx, "api")
		if report == nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err != nil && logg != nil {
			logg.Error(ctx, "sync completed with product errors", err)
		}

		responses.WriteSuccess(w, report)
	}
}
