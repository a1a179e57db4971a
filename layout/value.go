package layout

import (
	"fmt"
	"strconv"

	"github.com/OpticalFlyer/trellis/scene"
)

type valueKind uint8

const (
	kindFixed valueKind = iota
	kindPercentWidth
	kindPercentHeight
	kindMinWidth
	kindMinHeight
	kindPrefWidth
	kindPrefHeight
	kindMaxWidth
	kindMaxHeight
	kindBackgroundTop
	kindBackgroundLeft
	kindBackgroundBottom
	kindBackgroundRight
)

// Value is a size expression evaluated against a context actor when a
// layout runs. The zero Value is a fixed 0.
//
// Values are small immutable structs; copying one is free.
type Value struct {
	kind   valueKind
	amount float64
	actor  scene.Actor
}

// Zero is the fixed value 0.
var Zero = Value{}

// Values reading a size bound of the context actor. An actor that does not
// implement Layout reports its current size for every bound.
var (
	MinWidth   = Value{kind: kindMinWidth}
	MinHeight  = Value{kind: kindMinHeight}
	PrefWidth  = Value{kind: kindPrefWidth}
	PrefHeight = Value{kind: kindPrefHeight}
	MaxWidth   = Value{kind: kindMaxWidth}
	MaxHeight  = Value{kind: kindMaxHeight}
)

// Values reading the border sizes of the context's background drawable,
// or 0 without one. Tables and containers pad with these by default.
var (
	backgroundTop    = Value{kind: kindBackgroundTop}
	backgroundLeft   = Value{kind: kindBackgroundLeft}
	backgroundBottom = Value{kind: kindBackgroundBottom}
	backgroundRight  = Value{kind: kindBackgroundRight}
)

// Fixed returns a value that is always v.
func Fixed(v float64) Value {
	return Value{kind: kindFixed, amount: v}
}

// PercentWidth returns a fraction of the context actor's width.
func PercentWidth(percent float64) Value {
	return Value{kind: kindPercentWidth, amount: percent}
}

// PercentHeight returns a fraction of the context actor's height.
func PercentHeight(percent float64) Value {
	return Value{kind: kindPercentHeight, amount: percent}
}

// PercentWidthOf returns a fraction of actor's width regardless of context.
func PercentWidthOf(percent float64, actor scene.Actor) Value {
	return Value{kind: kindPercentWidth, amount: percent, actor: requireActor(actor)}
}

// PercentHeightOf returns a fraction of actor's height regardless of context.
func PercentHeightOf(percent float64, actor scene.Actor) Value {
	return Value{kind: kindPercentHeight, amount: percent, actor: requireActor(actor)}
}

// MinWidthOf returns actor's min width regardless of context. It panics
// if actor is nil.
func MinWidthOf(actor scene.Actor) Value {
	return Value{kind: kindMinWidth, actor: requireActor(actor)}
}

// MinHeightOf returns actor's min height regardless of context.
func MinHeightOf(actor scene.Actor) Value {
	return Value{kind: kindMinHeight, actor: requireActor(actor)}
}

// PrefWidthOf returns actor's pref width regardless of context.
func PrefWidthOf(actor scene.Actor) Value {
	return Value{kind: kindPrefWidth, actor: requireActor(actor)}
}

// PrefHeightOf returns actor's pref height regardless of context.
func PrefHeightOf(actor scene.Actor) Value {
	return Value{kind: kindPrefHeight, actor: requireActor(actor)}
}

// MaxWidthOf returns actor's max width regardless of context.
func MaxWidthOf(actor scene.Actor) Value {
	return Value{kind: kindMaxWidth, actor: requireActor(actor)}
}

// MaxHeightOf returns actor's max height regardless of context.
func MaxHeightOf(actor scene.Actor) Value {
	return Value{kind: kindMaxHeight, actor: requireActor(actor)}
}

func requireActor(actor scene.Actor) scene.Actor {
	if actor == nil {
		panic(fmt.Errorf("%w: actor cannot be nil", ErrInvalidArgument))
	}
	return actor
}

type backgrounder interface {
	Background() scene.Drawable
}

// Get evaluates the value. The value's own actor, if any, takes precedence
// over context. A nil context evaluates every relative value to 0.
func (v Value) Get(context scene.Actor) float64 {
	if v.kind == kindFixed {
		return v.amount
	}
	a := context
	if v.actor != nil {
		a = v.actor
	}
	if a == nil {
		return 0
	}
	n := a.Base()
	l, isLayout := a.(Layout)
	switch v.kind {
	case kindPercentWidth:
		return n.Width() * v.amount
	case kindPercentHeight:
		return n.Height() * v.amount
	case kindMinWidth:
		if isLayout {
			return l.MinWidth()
		}
		return n.Width()
	case kindMinHeight:
		if isLayout {
			return l.MinHeight()
		}
		return n.Height()
	case kindPrefWidth:
		if isLayout {
			return l.PrefWidth()
		}
		return n.Width()
	case kindPrefHeight:
		if isLayout {
			return l.PrefHeight()
		}
		return n.Height()
	case kindMaxWidth:
		if isLayout {
			return l.MaxWidth()
		}
		return n.Width()
	case kindMaxHeight:
		if isLayout {
			return l.MaxHeight()
		}
		return n.Height()
	}
	bg, ok := a.(backgrounder)
	if !ok {
		return 0
	}
	d := bg.Background()
	if d == nil {
		return 0
	}
	switch v.kind {
	case kindBackgroundTop:
		return d.TopHeight()
	case kindBackgroundLeft:
		return d.LeftWidth()
	case kindBackgroundBottom:
		return d.BottomHeight()
	case kindBackgroundRight:
		return d.RightWidth()
	}
	return 0
}

// IsFixed reports whether the value ignores its context.
func (v Value) IsFixed() bool { return v.kind == kindFixed }

func (v Value) String() string {
	var name string
	switch v.kind {
	case kindFixed:
		return strconv.FormatFloat(v.amount, 'g', -1, 64)
	case kindPercentWidth:
		name = "percentWidth(" + strconv.FormatFloat(v.amount, 'g', -1, 64) + ")"
	case kindPercentHeight:
		name = "percentHeight(" + strconv.FormatFloat(v.amount, 'g', -1, 64) + ")"
	case kindMinWidth:
		name = "minWidth"
	case kindMinHeight:
		name = "minHeight"
	case kindPrefWidth:
		name = "prefWidth"
	case kindPrefHeight:
		name = "prefHeight"
	case kindMaxWidth:
		name = "maxWidth"
	case kindMaxHeight:
		name = "maxHeight"
	case kindBackgroundTop:
		name = "backgroundTop"
	case kindBackgroundLeft:
		name = "backgroundLeft"
	case kindBackgroundBottom:
		name = "backgroundBottom"
	case kindBackgroundRight:
		name = "backgroundRight"
	}
	if v.actor != nil {
		name += " of " + fmt.Sprintf("%T", v.actor)
	}
	return name
}

// checkNonNegative panics if v is a fixed negative amount.
func checkNonNegative(what string, v Value) Value {
	if v.kind == kindFixed && v.amount < 0 {
		panic(fmt.Errorf("%w: %s cannot be < 0: %g", ErrInvalidArgument, what, v.amount))
	}
	return v
}
