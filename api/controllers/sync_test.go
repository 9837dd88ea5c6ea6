package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"

	"github.com/steno/caribbean-tees-pod/internal/catalog"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
)

type stubSyncer struct {
	gotTrigger string
	report     *catalog.Report
	err        error
}

func (s *stubSyncer) Run(_ context.Context, trigger string) (*catalog.Report, error) {
	s.gotTrigger = trigger
	return s.report, s.err
}

func TestTriggerSyncReturnsReport(t *testing.T) {
	svc := &stubSyncer{report: &catalog.Report{Trigger: "api", Synced: 3}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)

	TriggerSync(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "api", svc.gotTrigger)
	assert.Contains(t, rec.Body.String(), `"synced":3`)
}

func TestTriggerSyncPartialFailureStillReturnsReport(t *testing.T) {
	svc := &stubSyncer{
		report: &catalog.Report{
			Trigger: "api",
			Synced:  2,
			Errors:  1,
			Items: []catalog.ItemResult{
				{PrintifyProductID: "prod-3", Action: catalog.ActionFailed, Error: "remote fetch failed"},
			},
		},
		err: multierr.Append(nil, pkgerrors.New(pkgerrors.CodeDependency, "remote fetch failed")),
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)

	TriggerSync(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors":1`)
}

func TestTriggerSyncTotalFailure(t *testing.T) {
	svc := &stubSyncer{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog api down")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)

	TriggerSync(svc, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTriggerSyncNilService(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)

	TriggerSync(nil, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
