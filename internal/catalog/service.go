package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
	"github.com/steno/caribbean-tees-pod/pkg/metrics"
	"github.com/steno/caribbean-tees-pod/pkg/printify"
)

type remoteCatalog interface {
	GetProducts(ctx context.Context) ([]printify.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo     Repository
	Remote   remoteCatalog
	TxRunner txRunner
	Metrics  *metrics.SyncMetrics
	Logger   *logger.Logger
}

// Service reconciles the local catalog mirror against Printify.
type Service struct {
	repo     Repository
	remote   remoteCatalog
	txRunner txRunner
	metrics  *metrics.SyncMetrics
	logger   *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repo required")
	}
	if params.Remote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "printify client required")
	}
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		repo:     params.Repo,
		remote:   params.Remote,
		txRunner: params.TxRunner,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}, nil
}

// Run executes one full reconciliation pass. Products are processed one at
// a time; a failure on one product is recorded in the report and does not
// stop the run. The returned error aggregates per-product failures and is
// non-nil only when at least one product failed or the remote fetch failed.
func (s *Service) Run(ctx context.Context, trigger string) (*Report, error) {
	started := time.Now()
	report := &Report{Trigger: trigger, StartedAt: started}

	remoteProducts, err := s.remote.GetProducts(ctx)
	if err != nil {
		s.metrics.IncRun("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch remote catalog")
	}

	var errs error
	remoteIDs := make([]string, 0, len(remoteProducts))
	for _, remote := range remoteProducts {
		remoteIDs = append(remoteIDs, remote.ID)

		result := s.syncProduct(ctx, remote)
		report.Items = append(report.Items, result)

		switch result.Action {
		case ActionFailed:
			report.Errors++
			errs = multierr.Append(errs, fmt.Errorf("product %s: %s", result.PrintifyProductID, result.Error))
		case ActionHidden:
			report.Hidden++
		default:
			report.Synced++
		}
	}

	hiddenAbsent, err := s.repo.HideProductsNotIn(ctx, remoteIDs)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("hide absent products: %w", err))
		report.Errors++
	}
	report.HiddenAbsent = hiddenAbsent
	report.Duration = time.Since(started)

	s.metrics.ObserveDuration(trigger, report.Duration)
	s.metrics.AddProducts(string(ActionSynced), report.Synced)
	s.metrics.AddProducts(string(ActionHidden), report.Hidden+int(hiddenAbsent))
	s.metrics.AddProducts(string(ActionFailed), report.Errors)
	if errs != nil {
		s.metrics.IncRun("partial")
	} else {
		s.metrics.IncRun("ok")
	}

	logCtx := s.logger.WithFields(ctx, map[string]any{
		"trigger":       trigger,
		"synced":        report.Synced,
		"errors":        report.Errors,
		"hidden":        report.Hidden,
		"hidden_absent": hiddenAbsent,
		"duration_ms":   report.Duration.Milliseconds(),
	})
	s.logger.Info(logCtx, "catalog sync finished")

	return report, errs
}

func (s *Service) syncProduct(ctx context.Context, remote printify.Product) ItemResult {
	result := ItemResult{PrintifyProductID: remote.ID, Title: remote.Title}

	if !remote.Visible {
		if err := s.hideProduct(ctx, remote); err != nil {
			result.Action = ActionFailed
			result.Error = err.Error()
			s.logger.Error(s.logger.WithProductID(ctx, remote.ID), "hiding remote-invisible product", err)
			return result
		}
		result.Action = ActionHidden
		return result
	}

	product := buildProduct(remote)
	variants := buildVariants(remote)

	newIDs := make(map[int64]struct{}, len(variants))
	for _, v := range variants {
		newIDs[v.PrintifyVariantID] = struct{}{}
	}

	storedIDs, err := s.repo.ListVariantIDs(ctx, remote.ID)
	if err != nil {
		result.Action = ActionFailed
		result.Error = err.Error()
		return result
	}

	var stale []int64
	for _, id := range storedIDs {
		if _, ok := newIDs[id]; !ok {
			stale = append(stale, id)
		}
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpsertProduct(ctx, product); err != nil {
			return fmt.Errorf("upsert product: %w", err)
		}
		if err := repo.UpsertVariants(ctx, variants); err != nil {
			return fmt.Errorf("upsert variants: %w", err)
		}
		if err := repo.DeleteVariants(ctx, remote.ID, stale); err != nil {
			return fmt.Errorf("delete stale variants: %w", err)
		}
		return nil
	})
	if err != nil {
		result.Action = ActionFailed
		result.Error = err.Error()
		s.logger.Error(s.logger.WithProductID(ctx, remote.ID), "syncing product", err)
		return result
	}

	result.Action = ActionSynced
	result.VariantsUpserted = len(variants)
	result.VariantsDeleted = len(stale)
	return result
}

// hideProduct marks an existing local copy invisible, or stores a minimal
// invisible stub when the product was never synced before.
func (s *Service) hideProduct(ctx context.Context, remote printify.Product) error {
	_, err := s.repo.FindProduct(ctx, remote.ID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			stub := &models.Product{
				PrintifyProductID: remote.ID,
				Title:             remote.Title,
				Visible:           false,
			}
			return s.repo.UpsertProduct(ctx, stub)
		}
		return err
	}
	return s.repo.MarkInvisible(ctx, remote.ID)
}

func buildProduct(remote printify.Product) *models.Product {
	product := &models.Product{
		PrintifyProductID: remote.ID,
		Title:             remote.Title,
		Description:       remote.Description,
		Tags:              remote.Tags,
		Visible:           true,
	}

	if src := mainImage(remote.Images); src != "" {
		product.MainImageURL = &src
	}

	options := make([]models.ProductOption, 0, len(remote.Options))
	for _, opt := range remote.Options {
		values := make([]models.ProductOptionValue, 0, len(opt.Values))
		for _, val := range opt.Values {
			values = append(values, models.ProductOptionValue{ID: val.ID, Title: val.Title})
		}
		options = append(options, models.ProductOption{Name: opt.Name, Type: opt.Type, Values: values})
	}
	product.Options = options

	return product
}

// buildVariants keeps only variants that are both enabled and available,
// resolving a variant-scoped image where one exists.
func buildVariants(remote printify.Product) []models.ProductVariant {
	main := mainImage(remote.Images)

	var variants []models.ProductVariant
	for _, v := range remote.Variants {
		if !v.IsEnabled || !v.IsAvailable {
			continue
		}

		variant := models.ProductVariant{
			PrintifyProductID: remote.ID,
			PrintifyVariantID: v.ID,
			Title:             v.Title,
			PriceCents:        toCents(v.Price),
			IsAvailable:       true,
			SKU:               v.SKU,
			OptionIDs:         v.Options,
		}
		if src := variantImage(remote.Images, v.ID, main); src != "" {
			variant.ImageURL = &src
		}
		variants = append(variants, variant)
	}
	return variants
}

// toCents converts the remote decimal-dollar price to integer cents without
// accumulating float error.
func toCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func mainImage(images []printify.Image) string {
	for _, img := range images {
		if img.IsDefault {
			return img.Src
		}
	}
	if len(images) > 0 {
		return images[0].Src
	}
	return ""
}

func variantImage(images []printify.Image, variantID int64, fallback string) string {
	for _, img := range images {
		for _, id := range img.VariantIDs {
			if id == variantID {
				return img.Src
			}
		}
	}
	return fallback
}
