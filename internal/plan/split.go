package plan

import (
	"fmt"
	"sort"
)

// SplitWallSegments возвращает документ, в котором каждая стена с проёмами
// заменена на сплошные под-отрезки между проёмами. Проёмы становятся
// буквальными разрывами в геометрии, что нужно для 2D/3D-рендеринга.
func SplitWallSegments(doc Document) Document {
	pxPerMeter := doc.PxPerMeter()

	out := doc.Clone()
	elements := make([]Element, 0, len(out.Elements))
	for _, el := range out.Elements {
		if el.Type != TypeWall {
			elements = append(elements, el)
			continue
		}
		geom := el.Geometry
		if geom.Kind != KindSegment || len(geom.Points) != 4 || len(geom.Openings) == 0 {
			elements = append(elements, el)
			continue
		}

		x1, y1 := geom.Points[0], geom.Points[1]
		dx := geom.Points[2] - x1
		dy := geom.Points[3] - y1
		lengthPx := geom.SegmentLengthPx()
		if lengthPx == 0 {
			elements = append(elements, el)
			continue
		}
		lengthM := lengthPx / pxPerMeter

		pointAt := func(offsetM float64) (float64, float64) {
			ratio := offsetM * pxPerMeter / lengthPx
			return x1 + dx*ratio, y1 + dy*ratio
		}

		openings := append([]Opening(nil), geom.Openings...)
		sort.Slice(openings, func(i, j int) bool { return openings[i].FromM < openings[j].FromM })

		type span struct{ start, end float64 }
		var spans []span
		cursor := 0.0
		for _, op := range openings {
			start := op.FromM
			if start < 0 {
				start = 0
			}
			end := op.ToM
			if end < start {
				end = start
			}
			if start > lengthM {
				start = lengthM
			}
			if end > lengthM {
				end = lengthM
			}
			if start > cursor {
				spans = append(spans, span{cursor, start})
			}
			if end > cursor {
				cursor = end
			}
		}
		if cursor < lengthM {
			spans = append(spans, span{cursor, lengthM})
		}

		if len(spans) == 0 {
			elements = append(elements, el)
			continue
		}

		for idx, s := range spans {
			if s.end-s.start <= 0 {
				continue
			}
			sx, sy := pointAt(s.start)
			ex, ey := pointAt(s.end)
			seg := el.clone()
			seg.ID = segmentID(el.ID, idx+1)
			seg.Geometry.Points = []float64{sx, sy, ex, ey}
			seg.Geometry.Openings = nil
			elements = append(elements, seg)
		}
	}

	out.Elements = elements
	return out
}

func segmentID(base string, k int) string {
	return fmt.Sprintf("%s_seg%d", base, k)
}
