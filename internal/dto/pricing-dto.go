package dto

// PriceCalculatorInputDTO — запрос предварительного расчета стоимости.
// calculator_input остается непрозрачным мешком ключей, его разбирает PricingService.
type PriceCalculatorInputDTO struct {
	DistrictCode    string         `json:"district_code" validate:"omitempty"`
	HouseTypeCode   string         `json:"house_type_code" validate:"omitempty"`
	CalculatorInput map[string]any `json:"calculator_input" validate:"omitempty"`
}

type PriceBreakdownDTO struct {
	BaseComponent  float64        `json:"base_component"`
	WorksComponent float64        `json:"works_component"`
	FeaturesCoef   float64        `json:"features_coef"`
	Raw            map[string]any `json:"raw,omitempty"`
}

type PriceEstimateDTO struct {
	EstimatedPrice float64           `json:"estimated_price"`
	Breakdown      PriceBreakdownDTO `json:"breakdown"`
}
