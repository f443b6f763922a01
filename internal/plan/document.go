package plan

import (
	"math"

	apperrors "remodel-system/pkg/errors"
)

// Роли жизненного цикла элемента плана.
const (
	RoleExisting = "EXISTING"
	RoleToDelete = "TO_DELETE"
	RoleNew      = "NEW"
	RoleModified = "MODIFIED"
)

// Типы элементов.
const (
	TypeWall   = "wall"
	TypeZone   = "zone"
	TypeDoor   = "door"
	TypeWindow = "window"
	TypeLabel  = "label"
)

// Виды геометрии.
const (
	KindSegment = "segment"
	KindPolygon = "polygon"
	KindPoint   = "point"
)

var validRoles = map[string]bool{
	RoleExisting: true,
	RoleToDelete: true,
	RoleNew:      true,
	RoleModified: true,
}

var validZoneTypes = map[string]bool{
	"wet": true, "living_room": true, "dining_room": true, "kitchen": true,
	"entrance_hall": true, "bathroom": true, "laundry_room": true, "bedroom": true,
	"kids_room": true, "wardrobe": true, "home_office": true, "balcony": true,
	"veranda": true, "loggia": true,
}

var validWindowTypes = map[string]bool{
	"STANDARD": true, "BALCONY_DOOR": true, "PANORAMIC": true, "ROOF": true, "OTHER": true,
}

type Scale struct {
	PxPerMeter float64 `json:"px_per_meter"`
}

type Background struct {
	FileID  string  `json:"file_id"`
	Opacity float64 `json:"opacity"`
}

type Meta struct {
	Width          float64     `json:"width"`
	Height         float64     `json:"height"`
	Unit           string      `json:"unit"`
	Scale          *Scale      `json:"scale,omitempty"`
	Background     *Background `json:"background,omitempty"`
	CeilingHeightM *float64    `json:"ceilingHeight_m,omitempty"`
}

// Opening — дверной или оконный проём в стене, заданный диапазоном в метрах
// вдоль отрезка стены.
type Opening struct {
	Kind  string  `json:"kind"`
	FromM float64 `json:"from_m"`
	ToM   float64 `json:"to_m"`
}

type Geometry struct {
	Kind     string    `json:"kind"`
	Points   []float64 `json:"points,omitempty"`
	X        *float64  `json:"x,omitempty"`
	Y        *float64  `json:"y,omitempty"`
	Openings []Opening `json:"openings,omitempty"`
}

type Style struct {
	Color     string `json:"color,omitempty"`
	TextureID string `json:"texture_id,omitempty"`
}

// Element — элемент плана. Плоская структура с тегом Type вместо иерархии
// типов: так одним типом покрываются wall/zone/door/window/label, а
// специфичные поля остаются опциональными.
type Element struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Role        string    `json:"role,omitempty"`
	ZoneType    string    `json:"zoneType,omitempty"`
	RelatedTo   []string  `json:"relatedTo,omitempty"`
	Text        string    `json:"text,omitempty"`
	LoadBearing *bool     `json:"loadBearing,omitempty"`
	Thickness   *float64  `json:"thickness,omitempty"`
	WindowType  string    `json:"windowType,omitempty"`
	SillHeightM *float64  `json:"sillHeight_m,omitempty"`
	Style       *Style    `json:"style,omitempty"`
	Geometry    Geometry  `json:"geometry"`
}

type Object3D struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Position map[string]float64 `json:"position"`
	Rotation map[string]float64 `json:"rotation,omitempty"`
	Size     map[string]float64 `json:"size,omitempty"`
	WallID   string             `json:"wallId,omitempty"`
	ZoneID   string             `json:"zoneId,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty"`
}

// Document — структурированное описание плана квартиры.
type Document struct {
	Meta      Meta       `json:"meta"`
	Elements  []Element  `json:"elements"`
	Objects3D []Object3D `json:"objects3d,omitempty"`
}

// PxPerMeter возвращает масштаб плана; при отсутствии или некорректном
// значении используется 1.
func (d *Document) PxPerMeter() float64 {
	if d.Meta.Scale == nil || d.Meta.Scale.PxPerMeter <= 0 {
		return 1
	}
	return d.Meta.Scale.PxPerMeter
}

// SegmentLengthPx возвращает длину отрезка в пикселях; 0 для не-сегментов.
func (g *Geometry) SegmentLengthPx() float64 {
	if g.Kind != KindSegment || len(g.Points) != 4 {
		return 0
	}
	dx := g.Points[2] - g.Points[0]
	dy := g.Points[3] - g.Points[1]
	return math.Hypot(dx, dy)
}

// Validate проверяет инварианты документа: кардинальность геометрии,
// уникальность идентификаторов и границы проёмов.
func (d *Document) Validate() error {
	if d.Meta.Unit != "" && d.Meta.Unit != "px" {
		return apperrors.NewInvalidInputError("неподдерживаемая единица измерения плана: %q", d.Meta.Unit)
	}

	seen := make(map[string]bool, len(d.Elements))
	for i := range d.Elements {
		el := &d.Elements[i]
		if el.ID == "" {
			return apperrors.NewInvalidInputError("элемент плана #%d не имеет идентификатора", i)
		}
		if seen[el.ID] {
			return apperrors.NewInvalidInputError("дублирующийся идентификатор элемента плана: %q", el.ID)
		}
		seen[el.ID] = true

		if err := d.validateElement(el); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateElement(el *Element) error {
	switch el.Type {
	case TypeWall, TypeDoor, TypeWindow:
		if !validRoles[el.Role] {
			return apperrors.NewInvalidInputError("элемент %q: недопустимая роль %q", el.ID, el.Role)
		}
		if el.Geometry.Kind != KindSegment || len(el.Geometry.Points) != 4 {
			return apperrors.NewInvalidInputError("элемент %q: геометрия сегмента должна содержать ровно 4 координаты", el.ID)
		}
		if el.Type == TypeWindow && el.WindowType != "" && !validWindowTypes[el.WindowType] {
			return apperrors.NewInvalidInputError("элемент %q: недопустимый тип окна %q", el.ID, el.WindowType)
		}
		if el.Type == TypeWall {
			return d.validateOpenings(el)
		}
		if len(el.Geometry.Openings) > 0 {
			return apperrors.NewInvalidInputError("элемент %q: проёмы допустимы только у стен", el.ID)
		}
	case TypeZone:
		if el.Geometry.Kind != KindPolygon || len(el.Geometry.Points) < 6 || len(el.Geometry.Points)%2 != 0 {
			return apperrors.NewInvalidInputError("элемент %q: полигон зоны должен содержать минимум 3 точки", el.ID)
		}
		if el.ZoneType != "" && !validZoneTypes[el.ZoneType] {
			return apperrors.NewInvalidInputError("элемент %q: недопустимый тип зоны %q", el.ID, el.ZoneType)
		}
	case TypeLabel:
		if el.Geometry.Kind != KindPoint || el.Geometry.X == nil || el.Geometry.Y == nil {
			return apperrors.NewInvalidInputError("элемент %q: подпись должна иметь точечную геометрию", el.ID)
		}
	default:
		return apperrors.NewInvalidInputError("элемент %q: неизвестный тип %q", el.ID, el.Type)
	}
	return nil
}

func (d *Document) validateOpenings(el *Element) error {
	if len(el.Geometry.Openings) == 0 {
		return nil
	}
	lengthM := el.Geometry.SegmentLengthPx() / d.PxPerMeter()
	for _, op := range el.Geometry.Openings {
		if op.FromM < 0 || op.ToM < op.FromM {
			return apperrors.NewInvalidInputError(
				"элемент %q: некорректный диапазон проёма [%.2f, %.2f]", el.ID, op.FromM, op.ToM)
		}
		if op.ToM > lengthM+1e-9 {
			return apperrors.NewInvalidInputError(
				"элемент %q: проём выходит за длину стены (%.2f м)", el.ID, lengthM)
		}
	}
	return nil
}

// Clone возвращает глубокую копию документа.
func (d *Document) Clone() Document {
	out := Document{Meta: d.Meta}
	if d.Meta.Scale != nil {
		s := *d.Meta.Scale
		out.Meta.Scale = &s
	}
	if d.Meta.Background != nil {
		b := *d.Meta.Background
		out.Meta.Background = &b
	}
	if d.Meta.CeilingHeightM != nil {
		h := *d.Meta.CeilingHeightM
		out.Meta.CeilingHeightM = &h
	}
	out.Elements = make([]Element, len(d.Elements))
	for i := range d.Elements {
		out.Elements[i] = d.Elements[i].clone()
	}
	if d.Objects3D != nil {
		out.Objects3D = make([]Object3D, len(d.Objects3D))
		copy(out.Objects3D, d.Objects3D)
	}
	return out
}

func (e Element) clone() Element {
	out := e
	out.Geometry = e.Geometry.clone()
	if e.RelatedTo != nil {
		out.RelatedTo = append([]string(nil), e.RelatedTo...)
	}
	if e.LoadBearing != nil {
		v := *e.LoadBearing
		out.LoadBearing = &v
	}
	if e.Thickness != nil {
		v := *e.Thickness
		out.Thickness = &v
	}
	if e.SillHeightM != nil {
		v := *e.SillHeightM
		out.SillHeightM = &v
	}
	if e.Style != nil {
		s := *e.Style
		out.Style = &s
	}
	return out
}

func (g Geometry) clone() Geometry {
	out := g
	if g.Points != nil {
		out.Points = append([]float64(nil), g.Points...)
	}
	if g.Openings != nil {
		out.Openings = append([]Opening(nil), g.Openings...)
	}
	if g.X != nil {
		v := *g.X
		out.X = &v
	}
	if g.Y != nil {
		v := *g.Y
		out.Y = &v
	}
	return out
}
