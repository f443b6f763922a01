package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/pkg/utils"
)

const pricePerM2 = 500.0

// Стоимость видов работ, сомони.
const (
	worksWallsCost   = 3000.0
	worksWetZoneCost = 7000.0
	worksDoorwayCost = 5000.0
)

// Коэффициенты особенностей перепланировки.
const (
	coefBasement       = 1.2
	coefJoinApartments = 1.5
	coefUrgent         = 1.3
)

type PricingServiceInterface interface {
	Estimate(ctx context.Context, input dto.PriceCalculatorInputDTO) (*dto.PriceEstimateDTO, error)
	EstimateForOrder(ctx context.Context, order *entities.Order) *float64
}

type PricingService struct {
	directoryService DirectoryServiceInterface
	logger           *zap.Logger
}

func NewPricingService(directoryService DirectoryServiceInterface, logger *zap.Logger) PricingServiceInterface {
	return &PricingService{directoryService: directoryService, logger: logger}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func boolAt(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func subMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

// Calculate — чистая функция расчета стоимости.
// Коэффициенты района и типа дома передаются снаружи, 1.0 если справочник недоступен.
func Calculate(calc map[string]any, districtCoef, houseCoef float64) dto.PriceEstimateDTO {
	if calc == nil {
		calc = map[string]any{}
	}

	// Обратная совместимость: старый калькулятор присылал hasBasement на верхнем уровне.
	features := subMap(calc, "features")
	if _, promoted := features["basement"]; !promoted {
		if v, ok := calc["hasBasement"]; ok {
			if b, isBool := v.(bool); isBool {
				features = copyWith(features, "basement", b)
			}
		}
	}

	baseComponent := 0.0

	area := 0.0
	if v, ok := calc["area"].(float64); ok {
		area = v
	}
	areaCost := area * pricePerM2

	works := subMap(calc, "works")
	worksCost := 0.0
	if boolAt(works, "walls") {
		worksCost += worksWallsCost
	}
	if boolAt(works, "wet_zone") {
		worksCost += worksWetZoneCost
	}
	if boolAt(works, "doorways") {
		worksCost += worksDoorwayCost
	}
	worksComponent := areaCost + worksCost

	coefFeatures := 1.0
	if boolAt(features, "basement") {
		coefFeatures *= coefBasement
	}
	if boolAt(features, "join_apartments") {
		coefFeatures *= coefJoinApartments
	}
	if boolAt(calc, "urgent") {
		coefFeatures *= coefUrgent
	}

	// Район и тип дома влияют на общую стоимость.
	estimated := (baseComponent + worksComponent) * coefFeatures * districtCoef * houseCoef

	return dto.PriceEstimateDTO{
		EstimatedPrice: round2(estimated),
		Breakdown: dto.PriceBreakdownDTO{
			BaseComponent:  round2(baseComponent),
			WorksComponent: round2(worksComponent * districtCoef * houseCoef),
			FeaturesCoef:   round2(coefFeatures),
			Raw:            calc,
		},
	}
}

func copyWith(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

func (s *PricingService) Estimate(ctx context.Context, input dto.PriceCalculatorInputDTO) (*dto.PriceEstimateDTO, error) {
	districtCoef := s.districtCoef(ctx, input.DistrictCode)
	houseCoef := s.houseCoef(ctx, input.HouseTypeCode)
	estimate := Calculate(input.CalculatorInput, districtCoef, houseCoef)
	return &estimate, nil
}

// EstimateForOrder считает ориентировочную стоимость заказа.
// Любой сбой расчета деградирует в nil, создание заказа не блокируется.
func (s *PricingService) EstimateForOrder(ctx context.Context, order *entities.Order) *float64 {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Warn("Расчет стоимости завершился паникой", zap.Any("panic", p))
		}
	}()

	districtCoef := s.districtCoef(ctx, order.DistrictCode.String)
	houseCoef := s.houseCoef(ctx, order.HouseTypeCode.String)
	estimate := Calculate(order.CalculatorInput, districtCoef, houseCoef)
	return utils.ToPtr(estimate.EstimatedPrice)
}

func (s *PricingService) districtCoef(ctx context.Context, code string) float64 {
	if code == "" {
		return 1.0
	}
	district, err := s.directoryService.FindDistrict(ctx, code)
	if err != nil {
		s.logger.Warn("Район для расчета стоимости не найден", zap.String("code", code), zap.Error(err))
		return 1.0
	}
	return district.PriceCoef
}

func (s *PricingService) houseCoef(ctx context.Context, code string) float64 {
	if code == "" {
		return 1.0
	}
	houseType, err := s.directoryService.FindHouseType(ctx, code)
	if err != nil {
		s.logger.Warn("Тип дома для расчета стоимости не найден", zap.String("code", code), zap.Error(err))
		return 1.0
	}
	return houseType.PriceCoef
}
