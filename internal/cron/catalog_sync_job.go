package cron

import (
	"context"
	"errors"

	"github.com/steno/caribbean-tees-pod/internal/catalog"
)

const catalogSyncJobName = "catalog_sync"

type catalogSyncer interface {
	Run(ctx context.Context, trigger string) (*catalog.Report, error)
}

// CatalogSyncJob runs the catalog synchronizer on the worker schedule.
type CatalogSyncJob struct {
	syncer catalogSyncer
}

func NewCatalogSyncJob(syncer catalogSyncer) (*CatalogSyncJob, error) {
	if syncer == nil {
		return nil, errors.New("catalog sync service required")
	}
	return &CatalogSyncJob{syncer: syncer}, nil
}

func (j *CatalogSyncJob) Name() string { return catalogSyncJobName }

func (j *CatalogSyncJob) Run(ctx context.Context) error {
	_, err := j.syncer.Run(ctx, "schedule")
	return err
}
