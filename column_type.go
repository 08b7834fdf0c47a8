package remoteframe

import (
	"fmt"
	"strings"
)

// DType is the name of a column data type, as understood by the remote query service
type DType string

const (
	// Null is the type of an untyped null literal
	Null DType = "Null"
	// Boolean is a column type which stores a bool
	Boolean DType = "Boolean"
	// Int8 is a column type which stores an int8
	Int8 DType = "Int8"
	// Int16 is a column type which stores an int16
	Int16 DType = "Int16"
	// Int32 is a column type which stores an int32
	Int32 DType = "Int32"
	// Int64 is a column type which stores an int64
	Int64 DType = "Int64"
	// UInt8 is a column type which stores a uint8
	UInt8 DType = "UInt8"
	// UInt16 is a column type which stores a uint16
	UInt16 DType = "UInt16"
	// UInt32 is a column type which stores a uint32
	UInt32 DType = "UInt32"
	// UInt64 is a column type which stores a uint64
	UInt64 DType = "UInt64"
	// Float32 is a column type which stores a float32
	Float32 DType = "Float32"
	// Float64 is a column type which stores a float64
	Float64 DType = "Float64"
	// Utf8 is a column type which stores a variable-length string
	Utf8 DType = "Utf8"
	// Date is a column type which stores a calendar date
	Date DType = "Date"
	// Datetime is a column type which stores a point in time
	Datetime DType = "Datetime"
	// Duration is a column type which stores a time delta
	Duration DType = "Duration"
	// Time is a column type which stores a time of day
	Time DType = "Time"
	// Categorical is a column type which stores dictionary-encoded strings
	Categorical DType = "Categorical"
)

var knownDTypes = map[DType]bool{
	Null: true, Boolean: true,
	Int8: true, Int16: true, Int32: true, Int64: true,
	UInt8: true, UInt16: true, UInt32: true, UInt64: true,
	Float32: true, Float64: true,
	Utf8: true, Date: true, Datetime: true, Duration: true, Time: true, Categorical: true,
}

// integer widths, used to compute numeric supertypes
var intWidth = map[DType]int{
	Int8: 8, Int16: 16, Int32: 32, Int64: 64,
	UInt8: 8, UInt16: 16, UInt32: 32, UInt64: 64,
}

// ListOf returns the type of a list column whose elements have the given type
func ListOf(inner DType) DType {
	return DType(fmt.Sprintf("List(%s)", inner))
}

// ParseDType parses the textual name of a DType. Both "Utf8" and "String" are accepted for strings.
func ParseDType(name string) (DType, error) {
	name = strings.TrimSpace(name)
	if name == "String" || name == "Str" {
		return Utf8, nil
	}
	if strings.HasPrefix(name, "List(") && strings.HasSuffix(name, ")") {
		inner, err := ParseDType(name[len("List(") : len(name)-1])
		if err != nil {
			return "", err
		}
		return ListOf(inner), nil
	}
	if name == "List" {
		return ListOf(Null), nil
	}
	t := DType(name)
	if !knownDTypes[t] {
		return "", fmt.Errorf("%q is not a known data type", name)
	}
	return t, nil
}

// String returns the name of this DType
func (t DType) String() string {
	return string(t)
}

// IsList returns true iff this is a list type
func (t DType) IsList() bool {
	return strings.HasPrefix(string(t), "List(")
}

// Inner returns the element type of a list type, or the type itself otherwise
func (t DType) Inner() DType {
	if !t.IsList() {
		return t
	}
	return DType(t[len("List(") : len(t)-1])
}

// IsInteger returns true iff this is a signed or unsigned integer type
func (t DType) IsInteger() bool {
	_, ok := intWidth[t]
	return ok
}

// IsSigned returns true iff this is a signed integer or float type
func (t DType) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

// IsFloat returns true iff this is a floating point type
func (t DType) IsFloat() bool {
	return t == Float32 || t == Float64
}

// IsNumeric returns true iff this is an integer or floating point type
func (t DType) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsTemporal returns true iff this is a date or time related type
func (t DType) IsTemporal() bool {
	switch t {
	case Date, Datetime, Duration, Time:
		return true
	}
	return false
}

// Supertype computes the narrowest type which can represent values of both a and b
func Supertype(a DType, b DType) (DType, error) {
	switch {
	case a == b:
		return a, nil
	case a == Null:
		return b, nil
	case b == Null:
		return a, nil
	case a.IsFloat() && b.IsFloat():
		return Float64, nil
	case a.IsFloat() && b.IsNumeric():
		if a == Float32 && intWidth[b] <= 16 {
			return Float32, nil
		}
		return Float64, nil
	case b.IsFloat() && a.IsNumeric():
		return Supertype(b, a)
	case a.IsInteger() && b.IsInteger():
		width := intWidth[a]
		if intWidth[b] > width {
			width = intWidth[b]
		}
		if a.IsSigned() == b.IsSigned() {
			return intOfWidth(width, a.IsSigned()), nil
		}
		// mixing signed and unsigned needs one more bit
		if width < 64 {
			return intOfWidth(width*2, true), nil
		}
		return Float64, nil
	case a == Boolean && b.IsNumeric():
		return b, nil
	case b == Boolean && a.IsNumeric():
		return a, nil
	case a == Utf8 || b == Utf8:
		return Utf8, nil
	}
	return "", fmt.Errorf("no common supertype for %s and %s", a, b)
}

func intOfWidth(width int, signed bool) DType {
	if signed {
		switch width {
		case 8:
			return Int8
		case 16:
			return Int16
		case 32:
			return Int32
		}
		return Int64
	}
	switch width {
	case 8:
		return UInt8
	case 16:
		return UInt16
	case 32:
		return UInt32
	}
	return UInt64
}
