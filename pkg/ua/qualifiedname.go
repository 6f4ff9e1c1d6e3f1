package ua

import "fmt"

// QualifiedName is a namespace-qualified browse name.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           String
}

// NewQualifiedName builds a QualifiedName from a namespace index and name.
func NewQualifiedName(ns uint16, name string) QualifiedName {
	return QualifiedName{NamespaceIndex: ns, Name: NewString(name)}
}

// IsEmpty reports whether the name part is null or empty.
func (q QualifiedName) IsEmpty() bool { return q.Name.Len() == 0 }

func (q *QualifiedName) Clear() { *q = QualifiedName{} }

func (q QualifiedName) Copy() QualifiedName {
	return QualifiedName{NamespaceIndex: q.NamespaceIndex, Name: q.Name.Copy()}
}

// Compare orders by name content first, then by namespace index.
func (q QualifiedName) Compare(o QualifiedName) int {
	if c := q.Name.Compare(o.Name); c != 0 {
		return c
	}
	switch {
	case q.NamespaceIndex < o.NamespaceIndex:
		return -1
	case q.NamespaceIndex > o.NamespaceIndex:
		return 1
	}
	return 0
}

func (q QualifiedName) Equal(o QualifiedName) bool { return q.Compare(o) == 0 }

func (q QualifiedName) String() string {
	if q.NamespaceIndex == 0 {
		return q.Name.Value()
	}
	return fmt.Sprintf("%d:%s", q.NamespaceIndex, q.Name.Value())
}
