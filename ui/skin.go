// Package ui provides widgets built on the layout package: labels, images,
// buttons, check boxes, windows, dialogs, scroll panes and split panes. Their
// looks come from styles kept in a Skin.
package ui

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/OpticalFlyer/trellis/layout"
)

var (
	// ErrStyleNotFound is returned when a skin has no resource by a name.
	ErrStyleNotFound = errors.New("ui: style not found")
	// ErrStyleMismatch is returned when a skin has a resource by a name but
	// of another type than requested.
	ErrStyleMismatch = errors.New("ui: style type mismatch")
	// ErrNoSkin is returned by skin constructors called on a nil skin.
	ErrNoSkin = fmt.Errorf("%w: no skin", layout.ErrIllegalState)
)

// DefaultStyle is the name constructors use when given an empty style name.
const DefaultStyle = "default"

// Skin stores named resources: styles, fonts, colors and drawables. Two
// resources may share a name as long as their types differ.
type Skin struct {
	resources map[reflect.Type]map[string]any
}

// NewSkin returns an empty skin.
func NewSkin() *Skin {
	return &Skin{resources: make(map[reflect.Type]map[string]any)}
}

// Add stores resource under name, replacing any resource of the same type
// and name. It panics if resource is nil.
func (s *Skin) Add(name string, resource any) {
	if resource == nil {
		panic(fmt.Errorf("%w: nil resource %q", layout.ErrInvalidArgument, name))
	}
	typ := reflect.TypeOf(resource)
	byName, ok := s.resources[typ]
	if !ok {
		byName = make(map[string]any)
		s.resources[typ] = byName
	}
	byName[name] = resource
}

// Has reports whether any resource is stored under name.
func (s *Skin) Has(name string) bool {
	if s == nil {
		return false
	}
	for _, byName := range s.resources {
		if _, ok := byName[name]; ok {
			return true
		}
	}
	return false
}

// types returns the resource types in a stable order.
func (s *Skin) types() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.resources))
	for t := range s.resources {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// Get returns the resource of type T stored under name. When T is an
// interface, any resource implementing it matches.
func Get[T any](s *Skin, name string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNoSkin
	}
	typ := reflect.TypeFor[T]()
	if r, ok := s.resources[typ][name]; ok {
		return r.(T), nil
	}
	types := s.types()
	if typ.Kind() == reflect.Interface {
		for _, t := range types {
			if !t.Implements(typ) {
				continue
			}
			if r, ok := s.resources[t][name]; ok {
				return r.(T), nil
			}
		}
	}
	for _, t := range types {
		if _, ok := s.resources[t][name]; ok {
			return zero, fmt.Errorf("%w: %q is a %v, not a %v", ErrStyleMismatch, name, t, typ)
		}
	}
	return zero, fmt.Errorf("%w: %v %q", ErrStyleNotFound, typ, name)
}

// MustGet is like Get but panics on error.
func MustGet[T any](s *Skin, name string) T {
	r, err := Get[T](s, name)
	if err != nil {
		panic(err)
	}
	return r
}

func styleName(name string) string {
	if name == "" {
		return DefaultStyle
	}
	return name
}

func errInvalid(msg string) error {
	return fmt.Errorf("%w: %s", layout.ErrInvalidArgument, msg)
}
