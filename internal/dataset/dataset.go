// Package dataset holds the element records bundled with the application.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"element-quiz/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

//go:embed elements.json
var bundled []byte

var validate = validator.New()

// Load decodes and validates the bundled elements.
func Load() ([]domain.Element, error) {
	return Decode(bytes.NewReader(bundled))
}

// Decode reads a JSON array of elements and validates it.
func Decode(r io.Reader) ([]domain.Element, error) {
	var elements []domain.Element
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	if err := Validate(elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// Validate checks every record and that names and order numbers are unique.
func Validate(elements []domain.Element) error {
	for _, el := range elements {
		if err := validate.Struct(el); err != nil {
			return fmt.Errorf("%w: element %q: %v", domain.ErrDataIntegrity, el.Name, err)
		}
	}
	if dups := lo.FindDuplicatesBy(elements, func(el domain.Element) string { return el.Name }); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate name %q", domain.ErrDataIntegrity, dups[0].Name)
	}
	if dups := lo.FindDuplicatesBy(elements, func(el domain.Element) int { return el.OrderNumber }); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate order number %d", domain.ErrDataIntegrity, dups[0].OrderNumber)
	}
	return nil
}

// Find returns the element with the given order number.
func Find(elements []domain.Element, orderNumber int) (domain.Element, error) {
	el, ok := lo.Find(elements, func(el domain.Element) bool { return el.OrderNumber == orderNumber })
	if !ok {
		return domain.Element{}, fmt.Errorf("%w: %d", domain.ErrElementNotFound, orderNumber)
	}
	return el, nil
}

// ByCategory keeps the elements whose category is one of categories.
// An empty list keeps everything.
func ByCategory(elements []domain.Element, categories ...string) []domain.Element {
	if len(categories) == 0 {
		return elements
	}
	return lo.Filter(elements, func(el domain.Element, _ int) bool {
		return lo.Contains(categories, el.Category)
	})
}
