package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/usecase/queries"
	"metromobiles/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errs.New("product not found")
	ErrDuplicateSlug     = errs.New("a product with this name already exists")
	ErrProductValidation = errs.New("product validation failed")
	ErrImageUpload       = errs.New("image upload failed")
)

const maxProductImages = 10

// ImageStore persists uploaded product images and yields the public path
// stored on the product record.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(path string) error
}

// ProductInput carries the multipart form fields of a product write.
// Specifications and Features arrive as JSON-encoded strings; malformed
// payloads are treated as empty rather than rejected, matching how the
// admin panel has always submitted them.
type ProductInput struct {
	Name             string
	Brand            string
	MRPCents         int64
	PriceCents       int64
	Stock            int
	Description      string
	ShortDescription string
	Category         string
	Specifications   string
	Features         string
	Images           []*multipart.FileHeader
}

type ProductCommands interface {
	Create(ctx context.Context, input ProductInput) (*catalog.Product, error)
	Update(ctx context.Context, id catalog.ID, input ProductInput) (*catalog.Product, error)
	Delete(ctx context.Context, id catalog.ID) error
}

type productCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ProductReadStore
	images    ImageStore
}

func NewProductCommands(uow shared.UnitOfWork, readStore queries.ProductReadStore, images ImageStore) ProductCommands {
	return &productCommandsImpl{
		uow:       uow,
		readStore: readStore,
		images:    images,
	}
}

func (c *productCommandsImpl) Create(ctx context.Context, input ProductInput) (*catalog.Product, error) {
	p := &catalog.Product{
		ID:               catalog.ID(uuid.NewString()),
		Slug:             catalog.Slugify(input.Name),
		Name:             input.Name,
		Brand:            input.Brand,
		MRPCents:         input.MRPCents,
		PriceCents:       input.PriceCents,
		Stock:            input.Stock,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Category:         input.Category,
		Specifications:   parseSpecifications(input.Specifications),
		Features:         parseFeatures(input.Features),
	}
	if err := p.Validate(); err != nil {
		return nil, errs.Mark(err, ErrProductValidation)
	}

	paths, err := c.saveImages(input.Images)
	if err != nil {
		return nil, err
	}
	applyImages(p, paths)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		c.discardImages(paths)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return p, nil
}

func (c *productCommandsImpl) Update(ctx context.Context, id catalog.ID, input ProductInput) (*catalog.Product, error) {
	existing, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	p := &catalog.Product{
		ID:               existing.ID,
		Slug:             catalog.Slugify(input.Name),
		Name:             input.Name,
		Brand:            input.Brand,
		MRPCents:         input.MRPCents,
		PriceCents:       input.PriceCents,
		Stock:            input.Stock,
		Image:            existing.Image,
		Images:           existing.Images,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Category:         input.Category,
		Specifications:   parseSpecifications(input.Specifications),
		Features:         parseFeatures(input.Features),
	}
	if err := p.Validate(); err != nil {
		return nil, errs.Mark(err, ErrProductValidation)
	}

	// New uploads replace the whole gallery; without uploads the existing
	// images stay untouched.
	var paths []string
	if len(input.Images) > 0 {
		paths, err = c.saveImages(input.Images)
		if err != nil {
			return nil, err
		}
		applyImages(p, paths)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Update(ctx, p)
	})
	if err != nil {
		c.discardImages(paths)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	if len(paths) > 0 {
		c.discardImages(existing.Images)
	}
	return p, nil
}

func (c *productCommandsImpl) Delete(ctx context.Context, id catalog.ID) error {
	existing, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Delete(ctx, existing.ID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	c.discardImages(existing.Images)
	return nil
}

func (c *productCommandsImpl) saveImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		path, err := c.images.Save(fh)
		if err != nil {
			c.discardImages(paths)
			return nil, errs.Mark(err, ErrImageUpload)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *productCommandsImpl) discardImages(paths []string) {
	for _, path := range paths {
		if err := c.images.Remove(path); err != nil {
			slog.Warn("failed to remove product image", "path", path, "error", err.Error())
		}
	}
}

func applyImages(p *catalog.Product, paths []string) {
	if len(paths) == 0 {
		return
	}
	p.Images = paths
	p.Image = paths[0]
}

func parseSpecifications(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var specs map[string]string
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil
	}
	return specs
}

func parseFeatures(raw string) []string {
	if raw == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		return nil
	}
	return features
}
