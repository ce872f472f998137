package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter is a typed, validated, per-instance configurable value exposed
// by a process so callers can tweak how it behaves.
//
// Set always casts the input to the parameter type and then validates it;
// the stored value is only updated when validation passes, otherwise the
// assignment is silently dropped (Set returns false). Reset restores the
// declared default.
type Parameter interface {
	// Name returns the parameter identifier.
	Name() string

	// Default returns the declared default value.
	Default() any

	// Value returns the current value.
	Value() any

	// Set casts and validates the input, storing it on success. Returns
	// whether the value was stored.
	Set(value any) bool

	// Reset restores the default value.
	Reset()
}

// BoolParameter is a boolean parameter. The cast accepts bool, common
// truthy strings ("true", "True", "yes", "Yes", "ok", "1") and the
// integer 1; everything else casts to false.
type BoolParameter struct {
	name  string
	def   bool
	value bool
}

// NewBoolParameter declares a boolean parameter with the given default.
func NewBoolParameter(name string, def bool) *BoolParameter {
	return &BoolParameter{name: name, def: def, value: def}
}

// Name returns the parameter identifier.
func (p *BoolParameter) Name() string { return p.name }

// Default returns the declared default value.
func (p *BoolParameter) Default() any { return p.def }

// Value returns the current value.
func (p *BoolParameter) Value() any { return p.value }

// Bool returns the current value with its concrete type.
func (p *BoolParameter) Bool() bool { return p.value }

// Set casts the input to bool and stores it. The cast always succeeds.
func (p *BoolParameter) Set(value any) bool {
	switch v := value.(type) {
	case bool:
		p.value = v
	case string:
		switch v {
		case "true", "True", "yes", "Yes", "ok", "1":
			p.value = true
		default:
			p.value = false
		}
	case int:
		p.value = v == 1
	default:
		p.value = false
	}
	return true
}

// Reset restores the default value.
func (p *BoolParameter) Reset() { p.value = p.def }

// number constrains the numeric parameter kinds.
type number interface {
	~int | ~float64
}

// NumberParameter is a numeric parameter with optional minimum/maximum
// bounds. When clamping is enabled, out-of-range inputs are forced to the
// nearest bound during the cast; otherwise they fail validation and the
// assignment is dropped.
type NumberParameter[T number] struct {
	name  string
	def   T
	value T

	minimum *T
	maximum *T
	clamp   bool
}

// NumberOption configures a numeric parameter under construction.
type NumberOption[T number] func(*NumberParameter[T])

// WithMinimum sets the lower bound.
func WithMinimum[T number](minimum T) NumberOption[T] {
	return func(p *NumberParameter[T]) { p.minimum = &minimum }
}

// WithMaximum sets the upper bound.
func WithMaximum[T number](maximum T) NumberOption[T] {
	return func(p *NumberParameter[T]) { p.maximum = &maximum }
}

// WithClamp forces out-of-range inputs to the nearest bound instead of
// dropping them.
func WithClamp[T number]() NumberOption[T] {
	return func(p *NumberParameter[T]) { p.clamp = true }
}

// IntParameter is an integer parameter.
type IntParameter = NumberParameter[int]

// FloatParameter is a floating point parameter.
type FloatParameter = NumberParameter[float64]

// NewIntParameter declares an integer parameter with the given default.
func NewIntParameter(name string, def int, opts ...NumberOption[int]) *IntParameter {
	return newNumberParameter(name, def, opts...)
}

// NewFloatParameter declares a floating point parameter with the given
// default.
func NewFloatParameter(name string, def float64, opts ...NumberOption[float64]) *FloatParameter {
	return newNumberParameter(name, def, opts...)
}

func newNumberParameter[T number](name string, def T, opts ...NumberOption[T]) *NumberParameter[T] {
	p := &NumberParameter[T]{name: name, def: def, value: def}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the parameter identifier.
func (p *NumberParameter[T]) Name() string { return p.name }

// Default returns the declared default value.
func (p *NumberParameter[T]) Default() any { return p.def }

// Value returns the current value.
func (p *NumberParameter[T]) Value() any { return p.value }

// Number returns the current value with its concrete type.
func (p *NumberParameter[T]) Number() T { return p.value }

// Set casts the input to the parameter's numeric type, clamps it when
// configured, validates the range and stores it. Returns false and leaves
// the value untouched when the input cannot be cast or is out of range.
func (p *NumberParameter[T]) Set(value any) bool {
	cast, ok := castNumber[T](value)
	if !ok {
		return false
	}

	if p.clamp {
		if p.minimum != nil && cast < *p.minimum {
			cast = *p.minimum
		}
		if p.maximum != nil && cast > *p.maximum {
			cast = *p.maximum
		}
	}

	if p.minimum != nil && cast < *p.minimum {
		return false
	}
	if p.maximum != nil && cast > *p.maximum {
		return false
	}

	p.value = cast
	return true
}

// Reset restores the default value.
func (p *NumberParameter[T]) Reset() { p.value = p.def }

func castNumber[T number](value any) (T, bool) {
	switch v := value.(type) {
	case int:
		return T(v), true
	case int64:
		return T(v), true
	case float64:
		return T(v), true
	case float32:
		return T(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return T(f), true
		}
		return *new(T), false
	default:
		return *new(T), false
	}
}

// StringParameter is a string parameter with an optional whitelist of
// accepted values.
type StringParameter struct {
	name  string
	def   string
	value string

	validation    []string
	caseSensitive bool
}

// StringOption configures a string parameter under construction.
type StringOption func(*StringParameter)

// WithValidation restricts the parameter to the given values. Matching is
// case sensitive unless WithCaseInsensitive is also applied.
func WithValidation(values ...string) StringOption {
	return func(p *StringParameter) { p.validation = values }
}

// WithCaseInsensitive makes whitelist matching case insensitive.
func WithCaseInsensitive() StringOption {
	return func(p *StringParameter) { p.caseSensitive = false }
}

// NewStringParameter declares a string parameter with the given default.
func NewStringParameter(name, def string, opts ...StringOption) *StringParameter {
	p := &StringParameter{name: name, def: def, value: def, caseSensitive: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the parameter identifier.
func (p *StringParameter) Name() string { return p.name }

// Default returns the declared default value.
func (p *StringParameter) Default() any { return p.def }

// Value returns the current value.
func (p *StringParameter) Value() any { return p.value }

// String returns the current value with its concrete type.
func (p *StringParameter) String() string { return p.value }

// Set casts the input to a string, validates it against the whitelist if
// one was declared, and stores it. Returns false when validation fails.
func (p *StringParameter) Set(value any) bool {
	cast := fmt.Sprint(value)

	if p.validation != nil {
		ok := false
		for _, valid := range p.validation {
			if p.caseSensitive && cast == valid {
				ok = true
				break
			}
			if !p.caseSensitive && strings.EqualFold(cast, valid) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	p.value = cast
	return true
}

// Reset restores the default value.
func (p *StringParameter) Reset() { p.value = p.def }
