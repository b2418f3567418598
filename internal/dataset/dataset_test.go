package dataset

import (
	"errors"
	"strings"
	"testing"

	"element-quiz/internal/domain"
	"element-quiz/internal/quiz"
)

func TestLoadBundled(t *testing.T) {
	elements, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(elements) != 36 {
		t.Fatalf("expected 36 elements, got %d", len(elements))
	}
	// The bundled pool must support every question kind.
	if err := quiz.NewGenerator().CheckPool(elements, quiz.AllKinds()...); err != nil {
		t.Fatalf("bundled pool cannot serve all kinds: %v", err)
	}
}

func TestDecodeRejectsDuplicates(t *testing.T) {
	raw := `[
		{"name":"Iron","latinName":"Ferrum","symbol":"Fe","atomicMass":55.845,"orderNumber":26,"category":"Transition metal","period":4,"group":8,"phase":"Solid"},
		{"name":"Iron","latinName":"Ferrum","symbol":"Fe","atomicMass":55.845,"orderNumber":27,"category":"Transition metal","period":4,"group":8,"phase":"Solid"}
	]`
	_, err := Decode(strings.NewReader(raw))
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
}

func TestDecodeRejectsInvalidRecord(t *testing.T) {
	raw := `[{"name":"Nothing","latinName":"Nihil","symbol":"X","atomicMass":0,"orderNumber":1,"category":"None","period":1,"group":1,"phase":"Gas"}]`
	_, err := Decode(strings.NewReader(raw))
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
}

func TestFindAndFilter(t *testing.T) {
	elements, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	iron, err := Find(elements, 26)
	if err != nil || iron.Name != "Iron" {
		t.Fatalf("expected iron, got %+v (%v)", iron, err)
	}
	if _, err := Find(elements, 200); !errors.Is(err, domain.ErrElementNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	gases := ByCategory(elements, "Noble gas")
	if len(gases) != 4 {
		t.Fatalf("expected 4 noble gases, got %d", len(gases))
	}
	if len(ByCategory(elements)) != len(elements) {
		t.Fatalf("expected empty filter to keep everything")
	}
}
