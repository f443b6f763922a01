package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentValidate_OK(t *testing.T) {
	x, y := 10.0, 20.0
	doc := Document{
		Meta: Meta{Unit: "px", Scale: &Scale{PxPerMeter: 40}},
		Elements: []Element{
			wallWithOpenings("wall_1", []float64{0, 0, 400, 0}, Opening{Kind: "door", FromM: 1, ToM: 2}),
			{
				ID:       "zone_1",
				Type:     TypeZone,
				ZoneType: "kitchen",
				Geometry: Geometry{Kind: KindPolygon, Points: []float64{0, 0, 100, 0, 100, 100}},
			},
			{
				ID:       "label_1",
				Type:     TypeLabel,
				Text:     "Кухня",
				Geometry: Geometry{Kind: KindPoint, X: &x, Y: &y},
			},
		},
	}

	assert.NoError(t, doc.Validate())
}

func TestDocumentValidate_Errors(t *testing.T) {
	testCases := []struct {
		name string
		doc  Document
	}{
		{
			name: "неизвестная единица измерения",
			doc:  Document{Meta: Meta{Unit: "cm"}},
		},
		{
			name: "пустой идентификатор",
			doc:  Document{Elements: []Element{wall("", 0, 0, 10, 0)}},
		},
		{
			name: "дубликат идентификатора",
			doc: Document{Elements: []Element{
				wall("wall_1", 0, 0, 10, 0),
				wall("wall_1", 0, 10, 10, 10),
			}},
		},
		{
			name: "недопустимая роль стены",
			doc: Document{Elements: []Element{{
				ID:       "wall_1",
				Type:     TypeWall,
				Role:     "GHOST",
				Geometry: Geometry{Kind: KindSegment, Points: []float64{0, 0, 10, 0}},
			}}},
		},
		{
			name: "сегмент с неполной геометрией",
			doc: Document{Elements: []Element{{
				ID:       "wall_1",
				Type:     TypeWall,
				Role:     RoleExisting,
				Geometry: Geometry{Kind: KindSegment, Points: []float64{0, 0, 10}},
			}}},
		},
		{
			name: "полигон зоны из двух точек",
			doc: Document{Elements: []Element{{
				ID:       "zone_1",
				Type:     TypeZone,
				Geometry: Geometry{Kind: KindPolygon, Points: []float64{0, 0, 10, 0}},
			}}},
		},
		{
			name: "недопустимый тип зоны",
			doc: Document{Elements: []Element{{
				ID:       "zone_1",
				Type:     TypeZone,
				ZoneType: "garage",
				Geometry: Geometry{Kind: KindPolygon, Points: []float64{0, 0, 10, 0, 10, 10}},
			}}},
		},
		{
			name: "недопустимый тип окна",
			doc: Document{Elements: []Element{{
				ID:         "window_1",
				Type:       TypeWindow,
				Role:       RoleExisting,
				WindowType: "ARCH",
				Geometry:   Geometry{Kind: KindSegment, Points: []float64{0, 0, 10, 0}},
			}}},
		},
		{
			name: "проём у двери",
			doc: Document{Elements: []Element{{
				ID:   "door_1",
				Type: TypeDoor,
				Role: RoleNew,
				Geometry: Geometry{
					Kind:     KindSegment,
					Points:   []float64{0, 0, 10, 0},
					Openings: []Opening{{Kind: "door", FromM: 0, ToM: 1}},
				},
			}}},
		},
		{
			name: "подпись без координат",
			doc: Document{Elements: []Element{{
				ID:       "label_1",
				Type:     TypeLabel,
				Geometry: Geometry{Kind: KindPoint},
			}}},
		},
		{
			name: "неизвестный тип элемента",
			doc: Document{Elements: []Element{{
				ID:       "x_1",
				Type:     "stairs",
				Geometry: Geometry{Kind: KindSegment, Points: []float64{0, 0, 10, 0}},
			}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.doc.Validate())
		})
	}
}

func TestDocumentValidate_OpeningBeyondWall(t *testing.T) {
	// стена 4 м, проём до 5 м
	doc := Document{
		Meta: Meta{Scale: &Scale{PxPerMeter: 100}},
		Elements: []Element{
			wallWithOpenings("wall_1", []float64{0, 0, 400, 0}, Opening{Kind: "door", FromM: 3, ToM: 5}),
		},
	}
	assert.Error(t, doc.Validate())

	// обратный диапазон
	doc.Elements[0].Geometry.Openings = []Opening{{Kind: "door", FromM: 2, ToM: 1}}
	assert.Error(t, doc.Validate())
}

func TestDocumentPxPerMeter_Fallback(t *testing.T) {
	var doc Document
	assert.Equal(t, 1.0, doc.PxPerMeter())

	doc.Meta.Scale = &Scale{PxPerMeter: -5}
	assert.Equal(t, 1.0, doc.PxPerMeter())

	doc.Meta.Scale = &Scale{PxPerMeter: 40}
	assert.Equal(t, 40.0, doc.PxPerMeter())
}

func TestDocumentClone_Independence(t *testing.T) {
	loadBearing := true
	doc := Document{
		Meta: Meta{Scale: &Scale{PxPerMeter: 40}},
		Elements: []Element{{
			ID:          "wall_1",
			Type:        TypeWall,
			Role:        RoleExisting,
			LoadBearing: &loadBearing,
			Geometry: Geometry{
				Kind:     KindSegment,
				Points:   []float64{0, 0, 100, 0},
				Openings: []Opening{{Kind: "door", FromM: 0.5, ToM: 1}},
			},
		}},
	}

	clone := doc.Clone()
	clone.Meta.Scale.PxPerMeter = 80
	clone.Elements[0].Geometry.Points[2] = 999
	*clone.Elements[0].LoadBearing = false

	require.Equal(t, 40.0, doc.Meta.Scale.PxPerMeter)
	assert.Equal(t, 100.0, doc.Elements[0].Geometry.Points[2])
	assert.True(t, *doc.Elements[0].LoadBearing)
}
