package ml

import (
	"math"
	"testing"

	"empowerher/catalog"
)

// fixedModel scores every aligned row with the same probability logit-free,
// which makes threshold boundaries exact in tests.
type fixedModel struct {
	prob    float64
	columns []string
	calls   int
}

func (f *fixedModel) PredictProbability(row []float64) (float64, error) {
	f.calls++
	return f.prob, nil
}

func (f *fixedModel) FeatureNames() []string {
	return f.columns
}

func newFixedClassifier(t *testing.T, prob, threshold float64, cacheSize int) (*RiskClassifier, *fixedModel) {
	t.Helper()
	model := &fixedModel{prob: prob, columns: catalog.FieldNames()}
	classifier, err := NewRiskClassifier(model, threshold, cacheSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return classifier, model
}

func TestClassifyHighRiskScenario(t *testing.T) {
	classifier, _ := newFixedClassifier(t, 0.85, 0.82, 0)

	result, err := classifier.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Risk != HighRisk {
		t.Fatalf("expected %q, got %q", HighRisk, result.Risk)
	}
	if result.Display != "85.0%" {
		t.Fatalf("expected display 85.0%%, got %q", result.Display)
	}
	if result.Threshold != 0.82 {
		t.Fatalf("unexpected threshold: %v", result.Threshold)
	}
}

func TestClassifyLowRiskScenario(t *testing.T) {
	classifier, _ := newFixedClassifier(t, 0.85, 0.90, 0)

	result, err := classifier.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Risk != LowRisk {
		t.Fatalf("expected %q, got %q", LowRisk, result.Risk)
	}
}

func TestClassifyThresholdBoundary(t *testing.T) {
	// Exactly at the threshold is high risk; one representable unit
	// below is low risk.
	atBoundary, _ := newFixedClassifier(t, 0.82, 0.82, 0)
	result, err := atBoundary.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Risk != HighRisk {
		t.Fatalf("boundary probability should be high risk, got %q", result.Risk)
	}

	justBelow, _ := newFixedClassifier(t, math.Nextafter(0.82, 0), 0.82, 0)
	result, err = justBelow.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Risk != LowRisk {
		t.Fatalf("probability one ulp below threshold should be low risk, got %q", result.Risk)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	classifier, _ := newFixedClassifier(t, 0.4375, 0.5, 0)

	first, err := classifier.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := classifier.Classify(fullSelections())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results: %+v vs %+v", first, second)
	}
}

func TestClassifyUsesCache(t *testing.T) {
	classifier, model := newFixedClassifier(t, 0.6, 0.5, 8)

	if _, err := classifier.Classify(fullSelections()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := classifier.Classify(fullSelections()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("expected a single model call, got %d", model.calls)
	}

	// A different selection set must not hit the cached entry.
	changed := fullSelections()
	changed["bmi_group"] = 4
	if _, err := classifier.Classify(changed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.calls != 2 {
		t.Fatalf("expected second model call, got %d", model.calls)
	}
}

func TestClassifyRefusesSchemaDrift(t *testing.T) {
	model := &fixedModel{prob: 0.7, columns: append(catalog.FieldNames(), "tumor_grade")}
	classifier, err := NewRiskClassifier(model, 0.5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = classifier.Classify(fullSelections())
	mismatch, ok := err.(*SchemaMismatch)
	if !ok {
		t.Fatalf("expected SchemaMismatch, got %v", err)
	}
	if len(mismatch.Missing) != 1 || mismatch.Missing[0] != "tumor_grade" {
		t.Fatalf("unexpected missing set: %v", mismatch.Missing)
	}
	if model.calls != 0 {
		t.Fatal("model must not be scored on schema drift")
	}
}

func TestClassifyRejectsOutOfDomain(t *testing.T) {
	classifier, model := newFixedClassifier(t, 0.7, 0.5, 0)

	sel := fullSelections()
	sel["density"] = 42
	if _, err := classifier.Classify(sel); err == nil {
		t.Fatal("expected out-of-domain error")
	}
	if model.calls != 0 {
		t.Fatal("model must not be scored on invalid input")
	}
}

func TestNewRiskClassifierValidation(t *testing.T) {
	if _, err := NewRiskClassifier(nil, 0.5, 0); err == nil {
		t.Fatal("expected error for nil model")
	}
	model := &fixedModel{columns: catalog.FieldNames()}
	if _, err := NewRiskClassifier(model, 1.5, 0); err == nil {
		t.Fatal("expected error for threshold above 1")
	}
}

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		0.85:  "85.0%",
		0.043: "4.3%",
		1:     "100.0%",
		0:     "0.0%",
	}
	for prob, expected := range cases {
		if got := FormatPercent(prob); got != expected {
			t.Fatalf("FormatPercent(%v): expected %q, got %q", prob, expected, got)
		}
	}
}
