package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.CategoryManager = (*CategoryService)(nil)

type CategoryService struct {
	categories port.CategoriesStorage
}

func NewCategoryService(categories port.CategoriesStorage) CategoryService {
	return CategoryService{categories}
}

func (s CategoryService) AddCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	const op = "CategoryService.AddCategory"

	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c = normalizeCategory(c)
	if err := validateCategory(c); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.categories.InsertCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// AddCategories stores a batch of categories at once. The whole batch is
// rejected when any category is invalid.
func (s CategoryService) AddCategories(
	ctx context.Context, cs []domain.Category,
) ([]domain.Category, error) {
	const op = "CategoryService.AddCategories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(cs) == 0 {
		return nil, fmt.Errorf(
			"%s: %w: categories should be a non-empty list", op, domain.ErrValidation,
		)
	}

	var errs []error
	batch := make([]domain.Category, len(cs))
	for i, c := range cs {
		batch[i] = normalizeCategory(c)
		if err := validateCategory(batch[i]); err != nil {
			errs = append(errs, fmt.Errorf("category %d: %w", i, err))
		}
	}
	if len(errs) != 0 {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	created, err := s.categories.InsertCategories(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("categories created", "op", op, "nCreated", len(created))
	return created, nil
}

func normalizeCategory(c domain.Category) domain.Category {
	c.Name = strings.TrimSpace(c.Name)
	c.Parent = strings.TrimSpace(c.Parent)
	c.ProductType = strings.ToLower(strings.TrimSpace(c.ProductType))
	if c.Status == "" {
		c.Status = domain.CategoryShow
	}
	return c
}

func validateCategory(c domain.Category) error {
	var errs []error
	switch {
	case c.Name == "":
		errs = append(errs, errors.New("please provide a category name"))
	case len([]rune(c.Name)) > domain.MaxCategoryNameLen:
		errs = append(errs, errors.New("category name is too large"))
	}
	if c.ProductType == "" {
		errs = append(errs, errors.New("product type is required"))
	}
	if !c.Status.Valid() {
		errs = append(errs, fmt.Errorf("status must be %q or %q",
			domain.CategoryShow, domain.CategoryHide,
		))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func (s CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CategoryService.ListCategories"
	cs, err := s.read(ctx, domain.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

// ShownCategories returns the categories visible in the storefront.
func (s CategoryService) ShownCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CategoryService.ShownCategories"
	cs, err := s.read(ctx, domain.CategoryFilter{Status: domain.CategoryShow})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s CategoryService) CategoriesByProductType(
	ctx context.Context, productType string,
) ([]domain.Category, error) {
	const op = "CategoryService.CategoriesByProductType"

	productType = strings.TrimSpace(productType)
	if productType == "" {
		return nil, fmt.Errorf(
			"%s: %w: product type is required", op, domain.ErrValidation,
		)
	}

	cs, err := s.read(ctx, domain.CategoryFilter{ProductType: productType})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s CategoryService) read(
	ctx context.Context, f domain.CategoryFilter,
) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.categories.ReadCategories(ctx, f)
}

func (s CategoryService) GetCategory(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoryService.GetCategory"

	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := s.categories.ReadCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) UpdateCategory(
	ctx context.Context, id string, p domain.CategoryPatch,
) (domain.Category, error) {
	const op = "CategoryService.UpdateCategory"

	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.categories.ReadCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c, p := applyCategoryPatch(current, p)
	if err := validateCategory(c); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.categories.UpdateCategory(ctx, id, p)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// applyCategoryPatch returns c with the normalized patch applied and the
// normalized patch itself.
func applyCategoryPatch(
	c domain.Category, p domain.CategoryPatch,
) (domain.Category, domain.CategoryPatch) {
	trim := func(v *string, lower bool) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if lower {
			t = strings.ToLower(t)
		}
		return &t
	}
	p.Name = trim(p.Name, false)
	p.Parent = trim(p.Parent, false)
	p.ProductType = trim(p.ProductType, true)

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Parent != nil {
		c.Parent = *p.Parent
	}
	if p.ProductType != nil {
		c.ProductType = *p.ProductType
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if c.Status == "" {
		c.Status = domain.CategoryShow
	}
	return c, p
}

func (s CategoryService) DeleteCategory(ctx context.Context, id string) error {
	const op = "CategoryService.DeleteCategory"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
