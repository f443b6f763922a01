package plan

import "reflect"

// DiffResult — наборы идентификаторов для подсветки изменений:
// deleted — красный, added — зелёный, modified — жёлтый.
type DiffResult struct {
	Deleted  []string `json:"deleted"`
	Added    []string `json:"added"`
	Modified []string `json:"modified"`
}

// Diff вычисляет разницу между двумя версиями плана. Сравниваются только
// геометрия, роль и тип зоны — ровно то, что подсвечивает интерфейс.
func Diff(original, modified Document) DiffResult {
	result := DiffResult{
		Deleted:  []string{},
		Added:    []string{},
		Modified: []string{},
	}

	originalByID := indexByID(original.Elements)
	modifiedByID := indexByID(modified.Elements)

	for _, el := range original.Elements {
		if _, ok := modifiedByID[el.ID]; !ok {
			result.Deleted = appendUnique(result.Deleted, el.ID)
		}
	}
	for _, el := range modified.Elements {
		if _, ok := originalByID[el.ID]; !ok {
			result.Added = appendUnique(result.Added, el.ID)
		}
	}
	for _, el := range original.Elements {
		mod, ok := modifiedByID[el.ID]
		if !ok {
			continue
		}
		orig := originalByID[el.ID]
		if !reflect.DeepEqual(orig.Geometry, mod.Geometry) ||
			orig.Role != mod.Role ||
			orig.ZoneType != mod.ZoneType {
			result.Modified = appendUnique(result.Modified, el.ID)
		}
	}

	return result
}

// indexByID индексирует элементы по id; при дубликатах побеждает последний.
func indexByID(elements []Element) map[string]Element {
	index := make(map[string]Element, len(elements))
	for _, el := range elements {
		index[el.ID] = el
	}
	return index
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
