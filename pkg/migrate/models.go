package migrate

import "github.com/steno/caribbean-tees-pod/pkg/db/models"

func allModels() []any {
	return []any{
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.FulfillmentFailure{},
	}
}
