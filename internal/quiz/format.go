package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"element-quiz/internal/domain"
)

const (
	unknownDensity = "unknown"
	noTemperature  = "none"
	kelvinOffset   = 273.15
)

// Format renders the canonical answer for a kind about an element. Options and
// answer checks both go through Format so that equal answers are equal strings.
func Format(kind Kind, el domain.Element) (string, error) {
	switch kind {
	case KindLatinName:
		return el.LatinName, nil
	case KindCommonName:
		return el.Name, nil
	case KindAtomicMass:
		return strconv.FormatFloat(el.AtomicMass, 'f', 3, 64), nil
	case KindOrderNumber:
		return strconv.Itoa(el.OrderNumber), nil
	case KindCategory:
		return el.Category, nil
	case KindDensity:
		if el.Density == nil {
			return unknownDensity, nil
		}
		return strconv.FormatFloat(*el.Density, 'f', -1, 64), nil
	case KindPeriod:
		return strconv.Itoa(el.Period), nil
	case KindGroup:
		return strconv.Itoa(el.Group), nil
	case KindPhase:
		return el.Phase, nil
	case KindBoilingPoint:
		return formatTemperature(kind, el, el.BoilingPoint)
	case KindMeltingPoint:
		return formatTemperature(kind, el, el.MeltingPoint)
	}
	return "", fmt.Errorf("%w: %d", domain.ErrUnknownKind, int(kind))
}

// formatTemperature renders "<raw> K / <celsius> C" for a kelvin value.
func formatTemperature(kind Kind, el domain.Element, raw *string) (string, error) {
	if raw == nil {
		return noTemperature, nil
	}
	kelvin, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return "", &domain.FormatError{Kind: kind.String(), Element: el.Name, Value: *raw, Err: err}
	}
	return fmt.Sprintf("%s K / %.2f C", *raw, kelvin-kelvinOffset), nil
}

// IsCorrect judges a chosen option against the canonical answer.
func IsCorrect(kind Kind, el domain.Element, option string) (bool, error) {
	answer, err := Format(kind, el)
	if err != nil {
		return false, err
	}
	return option == answer, nil
}
