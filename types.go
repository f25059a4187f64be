package tablefunc

import (
	"fmt"
	"strings"
)

type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDInt
	TypeIDFloat
	TypeIDBoolean
	TypeIDString
	TypeIDTime
	TypeIDDuration
	TypeIDList
	TypeIDAny
)

func (t TypeID) String() string {
	switch t {
	case TypeIDNull:
		return "NULL"
	case TypeIDInt:
		return "Int"
	case TypeIDFloat:
		return "Float"
	case TypeIDBoolean:
		return "Boolean"
	case TypeIDString:
		return "String"
	case TypeIDTime:
		return "Time"
	case TypeIDDuration:
		return "Duration"
	case TypeIDList:
		return "List"
	case TypeIDAny:
		return "Any"
	default:
		panic("invalid type id")
	}
}

type Type struct {
	TypeID TypeID
	List   struct {
		Element *Type
	}
}

var (
	Null     = Type{TypeID: TypeIDNull}
	Int      = Type{TypeID: TypeIDInt}
	Float    = Type{TypeID: TypeIDFloat}
	Boolean  = Type{TypeID: TypeIDBoolean}
	String   = Type{TypeID: TypeIDString}
	Time     = Type{TypeID: TypeIDTime}
	Duration = Type{TypeID: TypeIDDuration}
	Any      = Type{TypeID: TypeIDAny}
)

func TypeList(element Type) Type {
	t := Type{TypeID: TypeIDList}
	t.List.Element = &element
	return t
}

// Is tells whether a value of this type fits a column declared with the
// other type. Any accepts every type.
func (t Type) Is(other Type) bool {
	if other.TypeID == TypeIDAny {
		return true
	}
	if t.TypeID != other.TypeID {
		return false
	}
	if t.TypeID == TypeIDList {
		if t.List.Element == nil || other.List.Element == nil {
			return true
		}
		return t.List.Element.Is(*other.List.Element)
	}
	return true
}

func (t Type) String() string {
	if t.TypeID == TypeIDList {
		if t.List.Element != nil {
			return fmt.Sprintf("[%s]", t.List.Element.String())
		}
		return "[]"
	}
	return t.TypeID.String()
}

// Field is a single named column of a schema.
type Field struct {
	Name string
	Type Type
}

// Schema is the ordered column list of a relation or of a table
// function's declared output.
type Schema struct {
	Fields []Field
}

func NewSchema(fields []Field) Schema {
	return Schema{
		Fields: fields,
	}
}

// FieldIndex returns the index of the named field, or -1 if the schema
// doesn't contain it.
func (s Schema) FieldIndex(name string) int {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) String() string {
	builder := &strings.Builder{}
	builder.WriteString("(")
	for i := range s.Fields {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(s.Fields[i].Name)
		builder.WriteString(" ")
		builder.WriteString(s.Fields[i].Type.String())
	}
	builder.WriteString(")")
	return builder.String()
}
