package repository

import (
	"context"
	"encoding/json"
	"errors"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) shared.ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	images, specs, features, err := marshalProductJSON(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO products (
			id, slug, name, brand, mrp_cents, price_cents, stock,
			image, images, description, short_description,
			specifications, features, category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID.String(), p.Slug, p.Name, p.Brand, p.MRPCents, p.PriceCents, p.Stock,
		p.Image, images, p.Description, p.ShortDescription,
		specs, features, p.Category,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("product slug already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	images, specs, features, err := marshalProductJSON(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET
			slug = $2, name = $3, brand = $4, mrp_cents = $5, price_cents = $6,
			stock = $7, image = $8, images = $9, description = $10,
			short_description = $11, specifications = $12, features = $13,
			category = $14, updated_at = now()
		WHERE id = $1`,
		p.ID.String(), p.Slug, p.Name, p.Brand, p.MRPCents, p.PriceCents,
		p.Stock, p.Image, images, p.Description,
		p.ShortDescription, specs, features, p.Category,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("product slug already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id catalog.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id.String())
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) FindForUpdate(ctx context.Context, id catalog.ID) (*catalog.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, slug, name, brand, mrp_cents, price_cents, stock,
		       image, images, description, short_description,
		       specifications, features, category
		FROM products
		WHERE id = $1 OR slug = $1
		FOR UPDATE`,
		id.String(),
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock product", err)
	}
	return p, nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id catalog.ID, qty int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		id.String(), qty,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient stock", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func marshalProductJSON(p *catalog.Product) (images, specs, features []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	if specs, err = json.Marshal(p.Specifications); err != nil {
		return nil, nil, nil, err
	}
	if features, err = json.Marshal(p.Features); err != nil {
		return nil, nil, nil, err
	}
	return images, specs, features, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
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
