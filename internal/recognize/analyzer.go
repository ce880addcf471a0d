package recognize

import (
	"context"
	"math/rand"
	"time"

	"github.com/calolens/calo-cli/internal/catalog"
	"github.com/calolens/calo-cli/internal/model"
	"github.com/calolens/calo-cli/internal/nutrition"
)

// Confidence tier thresholds for display classification.
const (
	ThresholdVeryHigh = 0.90
	ThresholdHigh     = 0.75
	ThresholdMedium   = 0.60
)

// Analyzer simulates a vision-based food recognizer. It never inspects
// the image payload; results are drawn from the food catalog with
// realistic confidence and portion distributions.
type Analyzer struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	sleep   func(context.Context, time.Duration) error
}

type Option func(*Analyzer)

// WithRand pins the random source, letting tests fix outcomes by seed.
func WithRand(rng *rand.Rand) Option {
	return func(a *Analyzer) { a.rng = rng }
}

// WithSleep replaces the latency simulation, letting tests skip delays.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(a *Analyzer) { a.sleep = sleep }
}

func New(cat *catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog: cat,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Analyze recognizes one to three catalog foods in the opaque image
// payload after a simulated 2-5s processing delay. An empty catalog
// yields an empty result with zero confidence rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, image []byte) (*model.FoodAnalysisResult, error) {
	delay := 2000 + a.rng.Float64()*3000
	if err := a.sleep(ctx, time.Duration(delay)*time.Millisecond); err != nil {
		return nil, err
	}

	foods := a.recognizeFoods()

	totals := make([]model.NutritionInfo, 0, len(foods))
	confidenceSum := 0.0
	for _, f := range foods {
		totals = append(totals, f.Nutrition)
		confidenceSum += f.Confidence
	}
	confidence := 0.0
	if len(foods) > 0 {
		confidence = confidenceSum / float64(len(foods))
	}

	return &model.FoodAnalysisResult{
		Foods:          foods,
		TotalNutrition: nutrition.Sum(totals),
		Confidence:     confidence,
		ProcessTimeMs:  int(2500 + a.rng.Float64()*2000),
	}, nil
}

func (a *Analyzer) recognizeFoods() []model.RecognizedFood {
	if len(a.catalog.Foods) == 0 {
		return nil
	}

	count := 1 + a.rng.Intn(3)
	if count > len(a.catalog.Foods) {
		count = len(a.catalog.Foods)
	}

	picks := a.rng.Perm(len(a.catalog.Foods))[:count]
	out := make([]model.RecognizedFood, 0, count)
	for _, i := range picks {
		food := a.catalog.Foods[i]
		grams := a.portionGrams(food)
		// Grams are non-negative by construction, so Scale cannot fail.
		info, _ := nutrition.Scale(food, grams)
		box := a.boundingBox()
		out = append(out, model.RecognizedFood{
			FoodID:         food.ID,
			Name:           food.Name,
			Confidence:     a.confidence(),
			EstimatedGrams: grams,
			Nutrition:      info,
			BoundingBox:    &box,
		})
	}
	return out
}

// confidence draws from a tiered distribution weighted toward high scores:
// 30% in [0.90,0.98), 30% in [0.75,0.89), 25% in [0.60,0.74), 15% in
// [0.45,0.59).
func (a *Analyzer) confidence() float64 {
	r := a.rng.Float64()
	switch {
	case r < 0.3:
		return 0.90 + a.rng.Float64()*0.08
	case r < 0.6:
		return 0.75 + a.rng.Float64()*0.14
	case r < 0.85:
		return 0.60 + a.rng.Float64()*0.14
	default:
		return 0.45 + a.rng.Float64()*0.14
	}
}

// portionGrams picks one of the food's common portions and jitters it by
// up to ±20%.
func (a *Analyzer) portionGrams(food model.FoodItem) float64 {
	portion := food.CommonPortions[a.rng.Intn(len(food.CommonPortions))]
	variation := 0.8 + a.rng.Float64()*0.4
	return float64(int(portion.Grams*variation + 0.5))
}

func (a *Analyzer) boundingBox() model.BoundingBox {
	return model.BoundingBox{
		X:      a.rng.Float64() * 0.3,
		Y:      a.rng.Float64() * 0.3,
		Width:  0.2 + a.rng.Float64()*0.5,
		Height: 0.2 + a.rng.Float64()*0.5,
	}
}

// ConfidenceLevel buckets a confidence score into its display tier.
func ConfidenceLevel(confidence float64) model.ConfidenceLevel {
	switch {
	case confidence >= ThresholdVeryHigh:
		return model.ConfidenceVeryHigh
	case confidence >= ThresholdHigh:
		return model.ConfidenceHigh
	case confidence >= ThresholdMedium:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// ScanBarcode looks a product up in the static barcode table after a
// simulated 1s scan delay. Unknown barcodes return nil without error.
func (a *Analyzer) ScanBarcode(ctx context.Context, barcode string) (*model.BarcodeProduct, error) {
	if err := a.sleep(ctx, time.Second); err != nil {
		return nil, err
	}
	product, ok := a.catalog.ProductByBarcode(barcode)
	if !ok {
		return nil, nil
	}
	return &product, nil
}
