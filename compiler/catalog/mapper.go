package catalog

import (
	"github.com/google/uuid"
)

// Map converts introspection rows into a Graph, preserving row order. It
// fails on the first row that breaks the row contract.
func Map(rows []TypeRow) (*Graph, error) {
	g := NewGraph()
	for _, row := range rows {
		n, err := mapRow(row)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.Add(n)
		}
	}
	return g, nil
}

func mapRow(row TypeRow) (TypeNode, error) {
	abstract := boolValue(row.IsAbstract)
	switch row.Kind {
	case "scalar":
		if len(row.EnumValues) > 0 {
			return &Enum{
				TypeID:   row.ID,
				TypeName: row.Name,
				Values:   row.EnumValues,
				Bases:    ids(row.Bases),
			}, nil
		}
		return &Scalar{
			TypeID:     row.ID,
			TypeName:   row.Name,
			IsAbstract: abstract,
			IsSeq:      row.IsSeq,
			Bases:      ids(row.Bases),
			MaterialID: row.MaterialID,
		}, nil
	case "range":
		if row.MultirangeElementID == nil {
			return nil, &RowError{Type: row.Name, Message: "range without element type"}
		}
		return &Range{TypeID: row.ID, TypeName: row.Name, ElementID: *row.MultirangeElementID, IsAbstract: abstract}, nil
	case "multirange":
		if row.MultirangeElementID == nil {
			return nil, &RowError{Type: row.Name, Message: "multirange without element type"}
		}
		return &MultiRange{TypeID: row.ID, TypeName: row.Name, ElementID: *row.MultirangeElementID, IsAbstract: abstract}, nil
	case "array":
		if row.ArrayElementID == nil {
			return nil, &RowError{Type: row.Name, Message: "array without element type"}
		}
		return &Array{TypeID: row.ID, TypeName: row.Name, ElementID: *row.ArrayElementID, IsAbstract: abstract}, nil
	case "tuple":
		t := &Tuple{TypeID: row.ID, TypeName: row.Name, IsAbstract: abstract}
		for _, e := range row.TupleElements {
			elem := TupleElement{TargetID: e.TargetID}
			if e.Name != nil {
				elem.Name = *e.Name
			}
			t.Elements = append(t.Elements, elem)
		}
		return t, nil
	case "object":
		return mapObject(row, abstract)
	default:
		return &Base{TypeID: row.ID, TypeName: row.Name, Kind: row.Kind}, nil
	}
}

func mapObject(row TypeRow, abstract bool) (*Object, error) {
	obj := &Object{
		TypeID:         row.ID,
		TypeName:       row.Name,
		IsAbstract:     abstract,
		Bases:          ids(row.Bases),
		UnionOf:        ids(row.UnionOf),
		IntersectionOf: ids(row.IntersectionOf),
		Pointers:       make([]Pointer, 0, len(row.Pointers)),
	}
	byName := make(map[string]Pointer, len(row.Pointers))
	for _, pr := range row.Pointers {
		p, ok, err := newPointer(row.Name, pr, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		obj.Pointers = append(obj.Pointers, p)
		byName[p.Name] = p
	}
	for _, ex := range row.Exclusives {
		if ex.Target == nil {
			continue
		}
		if group, ok := parseExclusive(*ex.Target, byName); ok {
			obj.Exclusives = append(obj.Exclusives, group)
		}
	}
	obj.Backlinks = backlinks(row)
	return obj, nil
}

func ids(rows []IDRow) []uuid.UUID {
	if len(rows) == 0 {
		return nil
	}
	out := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
