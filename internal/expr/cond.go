package expr

import (
	"fmt"
	"strings"
)

// Cond is a boolean condition over symbolic expressions.
type Cond interface {
	String() string

	isCond()
}

// Eq tests two expressions for equality.
type Eq struct {
	A, B Expr
}

// AnyOf is a logical OR over its terms.
type AnyOf struct {
	Terms []Cond
}

func (Eq) isCond()    {}
func (AnyOf) isCond() {}

func (e Eq) String() string {
	return fmt.Sprintf("%s == %s", e.A.String(), e.B.String())
}

func (a AnyOf) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " || ")
}

// Or folds conditions into a single disjunction. With no terms the result
// is nil, the trivially-false condition.
func Or(terms ...Cond) Cond {
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return AnyOf{Terms: terms}
}
