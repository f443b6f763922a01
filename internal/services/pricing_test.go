package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"remodel-system/internal/entities"
	apperrors "remodel-system/pkg/errors"
)

func TestCalculate_AreaAndWorks(t *testing.T) {
	result := Calculate(map[string]any{
		"area": 50.0,
		"works": map[string]any{
			"walls":    true,
			"wet_zone": true,
			"doorways": true,
		},
	}, 1.0, 1.0)

	// 50*500 + 3000 + 7000 + 5000
	assert.Equal(t, 40000.0, result.EstimatedPrice)
	assert.Equal(t, 0.0, result.Breakdown.BaseComponent)
	assert.Equal(t, 40000.0, result.Breakdown.WorksComponent)
	assert.Equal(t, 1.0, result.Breakdown.FeaturesCoef)
}

func TestCalculate_WorksAreFlagsNotCounts(t *testing.T) {
	result := Calculate(map[string]any{
		"works": map[string]any{"walls": true},
	}, 1.0, 1.0)

	// стоимость фиксированная, независимо от количества стен
	assert.Equal(t, 3000.0, result.EstimatedPrice)
}

func TestCalculate_FeatureCoefs(t *testing.T) {
	result := Calculate(map[string]any{
		"area": 10.0,
		"features": map[string]any{
			"basement":        true,
			"join_apartments": true,
		},
		"urgent": true,
	}, 1.0, 1.0)

	// 5000 * 1.2 * 1.5 * 1.3
	assert.Equal(t, 11700.0, result.EstimatedPrice)
	assert.InDelta(t, 2.34, result.Breakdown.FeaturesCoef, 1e-9)
}

func TestCalculate_LegacyHasBasementPromoted(t *testing.T) {
	result := Calculate(map[string]any{
		"area":        10.0,
		"hasBasement": true,
	}, 1.0, 1.0)

	assert.Equal(t, 6000.0, result.EstimatedPrice)
}

func TestCalculate_ExplicitBasementWins(t *testing.T) {
	// features.basement уже задан, верхнеуровневый hasBasement игнорируется
	result := Calculate(map[string]any{
		"area":        10.0,
		"hasBasement": true,
		"features":    map[string]any{"basement": false},
	}, 1.0, 1.0)

	assert.Equal(t, 5000.0, result.EstimatedPrice)
}

func TestCalculate_DistrictAndHouseCoefs(t *testing.T) {
	result := Calculate(map[string]any{"area": 10.0}, 1.2, 1.1)

	assert.Equal(t, 6600.0, result.EstimatedPrice)
	assert.Equal(t, 6600.0, result.Breakdown.WorksComponent)
}

func TestCalculate_Rounding(t *testing.T) {
	result := Calculate(map[string]any{"area": 1.111}, 1.0, 1.0)

	assert.Equal(t, 555.5, result.EstimatedPrice)
}

func TestCalculate_NilInput(t *testing.T) {
	result := Calculate(nil, 1.0, 1.0)

	assert.Equal(t, 0.0, result.EstimatedPrice)
	assert.NotNil(t, result.Breakdown.Raw)
}

type stubDirectoryService struct {
	districts  map[string]float64
	houseTypes map[string]float64
}

func (s *stubDirectoryService) GetDistricts(ctx context.Context) ([]entities.District, error) {
	return nil, nil
}

func (s *stubDirectoryService) FindDistrict(ctx context.Context, code string) (*entities.District, error) {
	coef, ok := s.districts[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entities.District{Code: code, PriceCoef: coef}, nil
}

func (s *stubDirectoryService) GetHouseTypes(ctx context.Context) ([]entities.HouseType, error) {
	return nil, nil
}

func (s *stubDirectoryService) FindHouseType(ctx context.Context, code string) (*entities.HouseType, error) {
	coef, ok := s.houseTypes[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entities.HouseType{Code: code, PriceCoef: coef}, nil
}

func (s *stubDirectoryService) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	return nil, nil
}

func TestEstimateForOrder_UnknownDirectoryCodesDegradeToOne(t *testing.T) {
	svc := NewPricingService(&stubDirectoryService{}, zap.NewNop())

	order := &entities.Order{CalculatorInput: map[string]any{"area": 10.0}}
	order.DistrictCode.SetValid("atlantis")
	order.HouseTypeCode.SetValid("igloo")

	estimate := svc.EstimateForOrder(context.Background(), order)

	require.NotNil(t, estimate)
	assert.Equal(t, 5000.0, *estimate)
}

func TestEstimateForOrder_AppliesDirectoryCoefs(t *testing.T) {
	svc := NewPricingService(&stubDirectoryService{
		districts:  map[string]float64{"central": 1.2},
		houseTypes: map[string]float64{"brick": 1.1},
	}, zap.NewNop())

	order := &entities.Order{CalculatorInput: map[string]any{"area": 10.0}}
	order.DistrictCode.SetValid("central")
	order.HouseTypeCode.SetValid("brick")

	estimate := svc.EstimateForOrder(context.Background(), order)

	require.NotNil(t, estimate)
	assert.Equal(t, 6600.0, *estimate)
}
