package components

import (
	"metromobiles/internal/infra/db"
	"metromobiles/internal/infra/imagestore"
	"metromobiles/internal/infra/readstore"
	"metromobiles/internal/infra/uow"
	"metromobiles/internal/pkg/config"
	"metromobiles/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		readstore.NewProductReadStore,
		readstore.NewUserReadStore,
		readstore.NewOrderReadStore,
		NewImageStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewImageStore(cfg config.Config) (commands.ImageStore, error) {
	return imagestore.NewDiskStore(cfg.Images)
}
