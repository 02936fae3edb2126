package codegen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/fidl/model"
)

// Enumerator is an enum value with its number resolved.
type Enumerator struct {
	Name  string
	Value uint64
}

// EnumValueError reports two enumerators written with the same value.
type EnumValueError struct {
	Enumeration string
	Value       uint64
	First       string
	Second      string
}

func (e *EnumValueError) Error() string {
	return fmt.Sprintf("enumeration %s: %s and %s both have value %d", e.Enumeration, e.First, e.Second, e.Value)
}

// NumberEnum resolves the value of every enumerator. Written values are
// claimed first. Each enumerator without one then takes the lowest value
// not yet claimed, in declaration order.
func NumberEnum(e model.Enumeration) ([]Enumerator, error) {
	claimed := make(map[uint64]string)
	for _, v := range e.Values {
		if v.Value == nil {
			continue
		}
		if first, ok := claimed[*v.Value]; ok {
			return nil, &EnumValueError{Enumeration: e.Name, Value: *v.Value, First: first, Second: v.Name}
		}
		claimed[*v.Value] = v.Name
	}

	result := make([]Enumerator, 0, len(e.Values))
	var next uint64
	for _, v := range e.Values {
		if v.Value != nil {
			result = append(result, Enumerator{Name: v.Name, Value: *v.Value})
			continue
		}
		for {
			if _, ok := claimed[next]; !ok {
				break
			}
			next++
		}
		claimed[next] = v.Name
		result = append(result, Enumerator{Name: v.Name, Value: next})
		next++
	}
	return result, nil
}

// enumBits returns the smallest of 8, 16, 32 and 64 bits that holds every
// value.
func enumBits(values []Enumerator) int {
	var largest uint64
	for _, v := range values {
		largest = max(largest, v.Value)
	}
	switch {
	case largest <= 0xff:
		return 8
	case largest <= 0xffff:
		return 16
	case largest <= 0xffffffff:
		return 32
	}
	return 64
}

// DetailsError reports a malformed or contradictory @details annotation.
type DetailsError struct {
	Owner   string
	Content string
	Reason  string
}

func (e *DetailsError) Error() string {
	return fmt.Sprintf("%s: @details %q: %s", e.Owner, e.Content, e.Reason)
}

// detail reads "key = number" from the @details annotation. Each line of
// the annotation holds one setting.
func detail(owner string, annotations []model.Annotation, key string) (uint64, bool, error) {
	a, ok := model.Lookup(annotations, "details")
	if !ok {
		return 0, false, nil
	}
	for _, row := range strings.Split(a.Content, "\n") {
		name, value, found := strings.Cut(row, "=")
		if !strings.EqualFold(strings.TrimSpace(name), key) {
			continue
		}
		if !found {
			return 0, false, &DetailsError{Owner: owner, Content: a.Content, Reason: "expected " + key + " = <number>"}
		}
		n, err := model.ParseNumber(strings.TrimSpace(value))
		if err != nil {
			return 0, false, &DetailsError{Owner: owner, Content: a.Content, Reason: err.Error()}
		}
		return n, true, nil
	}
	return 0, false, nil
}

// enumSize returns the bit width of an enumeration, honouring a
// "@details: size = N" annotation.
func enumSize(e model.Enumeration, values []Enumerator) (int, error) {
	bits := enumBits(values)
	size, ok, err := detail(e.Name, e.Annotations, "size")
	if err != nil || !ok {
		return bits, err
	}
	switch size {
	case 8, 16, 32, 64:
	default:
		return 0, &DetailsError{Owner: e.Name, Content: fmt.Sprintf("size = %d", size), Reason: "size must be 8, 16, 32 or 64"}
	}
	if int(size) < bits {
		return 0, &DetailsError{Owner: e.Name, Content: fmt.Sprintf("size = %d", size), Reason: fmt.Sprintf("values need at least %d bits", bits)}
	}
	return int(size), nil
}
