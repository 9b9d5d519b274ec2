package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.TagManager = (*TagService)(nil)

const maxTagNameLen = 100

type TagService struct {
	tags port.TagsStorage
}

func NewTagService(tags port.TagsStorage) TagService {
	return TagService{tags}
}

// AddTag returns the tag with the given name, creating it when absent.
func (s TagService) AddTag(ctx context.Context, name string) (domain.Tag, error) {
	const op = "TagService.AddTag"

	if err := ctx.Err(); err != nil {
		return domain.Tag{}, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return domain.Tag{}, fmt.Errorf(
			"%s: %w: please provide a name for this tag", op, domain.ErrValidation,
		)
	case len([]rune(name)) > maxTagNameLen:
		return domain.Tag{}, fmt.Errorf(
			"%s: %w: name is too large", op, domain.ErrValidation,
		)
	}

	t, err := s.tags.ReadTagByName(ctx, name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, fmt.Errorf("%s: %w", op, err)
	}

	t, err = s.tags.InsertTag(ctx, name)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func (s TagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	const op = "TagService.ListTags"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ts, err := s.tags.ReadTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ts, nil
}

func (s TagService) DeleteTag(ctx context.Context, id string) error {
	const op = "TagService.DeleteTag"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.tags.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
