package seeders

type departmentSeed struct {
	Code string
	Name string
}

type coefSeed struct {
	Code      string
	Name      string
	PriceCoef float64
}

type aiRuleSeed struct {
	Name             string
	Description      string
	RiskType         string
	Severity         int
	TriggerCondition string
}

type userSeed struct {
	Email          string
	FullName       string
	Password       string
	Role           string
	DepartmentCode string
}

var departmentsData = []departmentSeed{
	{Code: "GEO", Name: "Геодезия"},
	{Code: "BTI", Name: "БТИ"},
	{Code: "CAD", Name: "Кадастр"},
}

var districtsData = []coefSeed{
	{Code: "central", Name: "Центральный", PriceCoef: 1.2},
	{Code: "north", Name: "Северный", PriceCoef: 1.0},
	{Code: "south", Name: "Южный", PriceCoef: 0.9},
}

var houseTypesData = []coefSeed{
	{Code: "panel", Name: "Панельный дом", PriceCoef: 1.0},
	{Code: "brick", Name: "Кирпичный дом", PriceCoef: 1.1},
}

var aiRulesData = []aiRuleSeed{
	{
		Name:             "Снос несущей стены",
		Description:      "Полный демонтаж несущей конструкции запрещен",
		RiskType:         "LOAD_BEARING_DEMOLITION",
		Severity:         5,
		TriggerCondition: "элемент wall с loadBearing=true помечен role=DEMOLISHED",
	},
	{
		Name:             "Проем в несущей стене",
		Description:      "Устройство проема в несущей стене требует проекта усиления",
		RiskType:         "LOAD_BEARING_OPENING",
		Severity:         3,
		TriggerCondition: "элемент opening ссылается на wall с loadBearing=true",
	},
	{
		Name:             "Расширение мокрой зоны",
		Description:      "Перенос мокрой зоны над жилыми помещениями соседей",
		RiskType:         "WET_ZONE_EXPANSION",
		Severity:         4,
		TriggerCondition: "zone с zoneType=bathroom/kitchen выходит за исходный контур",
	},
	{
		Name:             "Смена назначения зоны",
		Description:      "Изменение функционального назначения помещения",
		RiskType:         "ZONE_REPURPOSE",
		Severity:         2,
		TriggerCondition: "zoneType изменен относительно исходного плана",
	},
}

var usersData = []userSeed{
	{Email: "client@example.com", FullName: "Тестовый Клиент", Password: "client123", Role: "client"},
	{Email: "executor@example.com", FullName: "Тестовый Исполнитель", Password: "executor123", Role: "executor", DepartmentCode: "BTI"},
	{Email: "admin@example.com", FullName: "Администратор", Password: "admin123", Role: "admin"},
}
