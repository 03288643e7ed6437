package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const productColumns = `
	id, slug, name, brand, mrp_cents, price_cents, stock,
	image, images, description, short_description,
	specifications, features, category`

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) queries.ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (s *ProductReadStore) List(ctx context.Context, filter queries.ProductFilter) ([]catalog.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	args := make([]any, 0, 2)

	if filter.Brand != "" {
		args = append(args, filter.Brand)
		sql += fmt.Sprintf(` AND lower(brand) = lower($%d)`, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		sql += fmt.Sprintf(` AND (name ILIKE $%d OR brand ILIKE $%d)`, len(args), len(args))
	}

	switch filter.Sort {
	case queries.SortPriceLow:
		sql += ` ORDER BY price_cents ASC`
	case queries.SortPriceHigh:
		sql += ` ORDER BY price_cents DESC`
	case queries.SortName:
		sql += ` ORDER BY name ASC`
	default:
		sql += ` ORDER BY created_at DESC`
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	return products, nil
}

func (s *ProductReadStore) FindByID(ctx context.Context, id catalog.ID) (*catalog.Product, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 OR slug = $1`,
		id.String(),
	)
	p, err := scanProductRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductRow(row rowScanner) (*catalog.Product, error) {
	var (
		p        catalog.Product
		id       string
		images   []byte
		specs    []byte
		features []byte
	)
	err := row.Scan(
		&id, &p.Slug, &p.Name, &p.Brand, &p.MRPCents, &p.PriceCents, &p.Stock,
		&p.Image, &images, &p.Description, &p.ShortDescription,
		&specs, &features, &p.Category,
	)
	if err != nil {
		return nil, err
	}
	p.ID = catalog.ID(id)

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, err
		}
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
