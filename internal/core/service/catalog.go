package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
)

const (
	relatedLimit  = 8
	topRatedLimit = 10
)

func (s Service) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.CreateProduct"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Title = strings.TrimSpace(p.Title)
	p.SKU = domain.NormalizeSKU(p.SKU)
	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Status = domain.StockStatus(p.Quantity)

	created, err := s.products.InsertProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	// The product is stored at this point. A lost category back-reference
	// is restored by ReconcileAll.
	if created.Category.ID != "" {
		err := s.categories.AttachProduct(ctx, created.Category.ID, created.ID)
		if err != nil {
			log.Error("failed to attach product to category",
				"productID", created.ID, "err", err,
			)
		}
	}
	if created.Brand.ID != "" {
		err := s.brands.AttachProduct(ctx, created.Brand.ID, created.ID)
		if err != nil {
			log.Error("failed to attach product to brand",
				"productID", created.ID, "err", err,
			)
		}
	}

	log.Info("product created", "productID", created.ID, "sku", created.SKU)
	return created, nil
}

// AddProducts stores a batch of products at once and appends them to
// their category and brand lists.
//
// The whole batch is rejected when any product is invalid.
func (s Service) AddProducts(
	ctx context.Context, ps []domain.Product,
) ([]domain.Product, error) {
	const op = "Service.AddProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ps) == 0 {
		return nil, fmt.Errorf(
			"%s: %w: products should be a non-empty list", op, domain.ErrValidation,
		)
	}

	var errs []error
	batch := make([]domain.Product, len(ps))
	for i, p := range ps {
		p.Title = strings.TrimSpace(p.Title)
		p.SKU = domain.NormalizeSKU(p.SKU)
		if err := validateProduct(p); err != nil {
			errs = append(errs, fmt.Errorf("product %d: %w", i, err))
		}
		p.Status = domain.StockStatus(p.Quantity)
		batch[i] = p
	}
	if len(errs) != 0 {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	created, err := s.products.InsertProducts(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byCategory, byBrand := productRefs(created)
	if err := s.categories.AttachProducts(ctx, byCategory); err != nil {
		log.Error("failed to attach products to categories", "err", err)
	}
	if err := s.brands.AttachProducts(ctx, byBrand); err != nil {
		log.Error("failed to attach products to brands", "err", err)
	}

	log.Info("products created", "nCreated", len(created))
	return created, nil
}

// productRefs groups product ids by category id and by brand id.
func productRefs(ps []domain.Product) (byCategory, byBrand map[string][]string) {
	byCategory = make(map[string][]string)
	byBrand = make(map[string][]string)
	for _, p := range ps {
		if p.Category.ID != "" {
			byCategory[p.Category.ID] = append(byCategory[p.Category.ID], p.ID)
		}
		if p.Brand.ID != "" {
			byBrand[p.Brand.ID] = append(byBrand[p.Brand.ID], p.ID)
		}
	}
	return byCategory, byBrand
}

func validateProduct(p domain.Product) error {
	var errs []error
	if p.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if p.SKU == "" {
		errs = append(errs, errors.New("sku is required"))
	}
	if p.Price < 0 {
		errs = append(errs, errors.New("price can't be negative"))
	}
	if p.Quantity < 0 {
		errs = append(errs, errors.New("quantity can't be negative"))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func (s Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "Service.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ReadProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProduct applies the patch and moves the product between category
// lists when its category changes.
func (s Service) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"
	log := slog.With("op", op, "productID", id)

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePatch(patch); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	old, err := s.products.ReadProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	moved := patch.Category != nil && patch.Category.ID != old.Category.ID
	if moved && patch.Category.ID != "" {
		_, err := s.categories.ReadCategory(ctx, patch.Category.ID)
		if err != nil {
			return domain.Product{}, fmt.Errorf(
				"%s: new category: %w", op, err,
			)
		}
	}

	if patch.Quantity != nil {
		status := domain.StockStatus(*patch.Quantity)
		patch.Status = &status
	} else {
		patch.Status = nil
	}

	updated, err := s.products.UpdateProduct(ctx, id, patch)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if !moved {
		return updated, nil
	}

	// The patch is stored at this point. Lost back-references are restored
	// by ReconcileAll.
	if old.Category.ID != "" {
		err := s.categories.DetachProduct(ctx, old.Category.ID, id)
		if err != nil {
			log.Error("failed to detach product from category",
				"categoryID", old.Category.ID, "err", err,
			)
		}
	}
	if patch.Category.ID != "" {
		err := s.categories.AttachProduct(ctx, patch.Category.ID, id)
		if err != nil {
			log.Error("failed to attach product to category",
				"categoryID", patch.Category.ID, "err", err,
			)
		}
	}

	log.Info("product moved",
		"fromCategory", old.Category.ID, "toCategory", patch.Category.ID,
	)
	return updated, nil
}

func validatePatch(p domain.ProductPatch) error {
	var errs []error
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs = append(errs, errors.New("title can't be empty"))
	}
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, errors.New("price can't be negative"))
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		errs = append(errs, errors.New("quantity can't be negative"))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

// DeleteProduct removes the product. Category lists drop the id on the
// next ReconcileAll run.
func (s Service) DeleteProduct(ctx context.Context, id string) error {
	const op = "Service.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RelatedProducts returns in-stock products of the same category.
//
// An unknown product has no related products.
func (s Service) RelatedProducts(
	ctx context.Context, id string,
) ([]domain.Product, error) {
	const op = "Service.RelatedProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ReadProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.RelatedProducts(ctx, p.Category.Name, p.ID, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) TopRatedProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.TopRatedProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.TopRatedProducts(ctx, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) StockOutProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.StockOutProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.StockOutProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// AddReview stores the review and appends it to the product reviews.
func (s Service) AddReview(
	ctx context.Context, r domain.Review,
) (domain.Review, error) {
	const op = "Service.AddReview"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := validateReview(r); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.products.ReadProduct(ctx, r.ProductID); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.reviews.InsertReview(ctx, r)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.PushReview(ctx, r.ProductID, created.ID); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// DeleteReview removes the review and drops it from the product reviews.
func (s Service) DeleteReview(ctx context.Context, id string) error {
	const op = "Service.DeleteReview"
	log := slog.With("op", op, "reviewID", id)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := s.reviews.DeleteReview(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// The review is gone at this point, a dangling id resolves to nothing.
	if err := s.products.PullReview(ctx, deleted.ProductID, id); err != nil {
		log.Error("failed to pull review from product",
			"productID", deleted.ProductID, "err", err,
		)
	}
	return nil
}

// DeleteProductReviews removes every review of the product and returns
// how many were deleted. A product without reviews is reported as
// [domain.ErrNotFound].
func (s Service) DeleteProductReviews(
	ctx context.Context, productID string,
) (int, error) {
	const op = "Service.DeleteProductReviews"
	log := slog.With("op", op, "productID", productID)

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.reviews.DeleteProductReviews(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return 0, fmt.Errorf(
			"%s: %w: product reviews not found", op, domain.ErrNotFound,
		)
	}

	if err := s.products.ClearReviews(ctx, productID); err != nil {
		log.Error("failed to clear product reviews", "err", err)
	}
	log.Info("product reviews deleted", "nDeleted", n)
	return n, nil
}

func validateReview(r domain.Review) error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if r.ProductID == "" {
		errs = append(errs, errors.New("product id is required"))
	}
	if r.Rating < domain.MinRating || r.Rating > domain.MaxRating {
		errs = append(errs, fmt.Errorf(
			"rating must be in [%v, %v]", domain.MinRating, domain.MaxRating,
		))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}
