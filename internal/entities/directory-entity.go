package entities

type Department struct {
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

type District struct {
	Code      string  `json:"code" db:"code"`
	Name      string  `json:"name" db:"name"`
	PriceCoef float64 `json:"price_coef" db:"price_coef"`
}

type HouseType struct {
	Code      string  `json:"code" db:"code"`
	Name      string  `json:"name" db:"name"`
	PriceCoef float64 `json:"price_coef" db:"price_coef"`
}
