package resources

import (
	"fmt"

	"github.com/wippyai/jsbindgen/errors"
	"go.bytecodealliance.org/wit"
)

// Use is one resource referenced by a function signature
type Use struct {
	Resource *Resource
	Own      bool
	Borrow   bool
}

// Uses is the ordered set of resources a function touches
type Uses struct {
	order []*Use
	index map[*Resource]*Use
}

// All returns uses in first-reference order
func (u *Uses) All() []*Use { return u.order }

// Len returns the number of distinct resources
func (u *Uses) Len() int { return len(u.order) }

// Get returns the use of r, if any
func (u *Uses) Get(r *Resource) (*Use, bool) {
	use, ok := u.index[r]
	return use, ok
}

func (u *Uses) add(r *Resource, own bool) {
	use, ok := u.index[r]
	if !ok {
		use = &Use{Resource: r}
		u.index[r] = use
		u.order = append(u.order, use)
	}
	if own {
		use.Own = true
	} else {
		use.Borrow = true
	}
}

// Discover walks every parameter and result of fn and returns the resources
// reached through records, tuples, variants, options, results, lists and
// aliases. Import resources found are marked for drop wiring.
func (t *Table) Discover(fn *wit.Function) (*Uses, error) {
	uses := &Uses{index: make(map[*Resource]*Use)}
	for _, p := range fn.Params {
		if err := t.walk(p.Type, uses); err != nil {
			return nil, errors.WithPath(errors.PhaseClassify, err, fn.Name, p.Name)
		}
	}
	for _, r := range fn.Results {
		if err := t.walk(r.Type, uses); err != nil {
			return nil, errors.WithPath(errors.PhaseClassify, err, fn.Name, "result")
		}
	}
	for _, use := range uses.order {
		t.Use(use.Resource)
	}
	return uses, nil
}

func (t *Table) walk(typ wit.Type, uses *Uses) error {
	td, ok := typ.(*wit.TypeDef)
	if !ok {
		return nil
	}

	switch kind := td.Kind.(type) {
	case *wit.Record:
		for _, f := range kind.Fields {
			if err := t.walk(f.Type, uses); err != nil {
				return err
			}
		}
	case *wit.Tuple:
		for _, elem := range kind.Types {
			if err := t.walk(elem, uses); err != nil {
				return err
			}
		}
	case *wit.Variant:
		for _, c := range kind.Cases {
			if c.Type == nil {
				continue
			}
			if err := t.walk(c.Type, uses); err != nil {
				return err
			}
		}
	case *wit.Option:
		return t.walk(kind.Type, uses)
	case *wit.Result:
		if kind.OK != nil {
			if err := t.walk(kind.OK, uses); err != nil {
				return err
			}
		}
		if kind.Err != nil {
			return t.walk(kind.Err, uses)
		}
	case *wit.List:
		return t.walk(kind.Type, uses)
	case *wit.Own:
		return t.handle(kind.Type, true, uses)
	case *wit.Borrow:
		return t.handle(kind.Type, false, uses)
	case *wit.Resource:
		return errors.InvalidType(errors.PhaseClassify, nil, typeName(td), "resource passed by value, expected own or borrow")
	case *wit.Enum, *wit.Flags:
	case wit.Type:
		return t.walk(kind, uses)
	default:
		return errors.Unsupported(errors.PhaseClassify, fmt.Sprintf("type kind %T", td.Kind))
	}
	return nil
}

func (t *Table) handle(def *wit.TypeDef, own bool, uses *Uses) error {
	r, err := t.Lookup(def)
	if err != nil {
		return err
	}
	uses.add(r, own)
	return nil
}
