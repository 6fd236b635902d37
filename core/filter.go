package core

import "sort"

// Filter is an equality constraint set handed to record store queries.
type Filter map[string]string

type FilterField struct {
	Name  string
	Value *string
}

// Optional pairs a field name with a value that may be absent.
func Optional(name string, value *string) FilterField {
	return FilterField{Name: name, Value: value}
}

// Fixed pairs a field name with a value that is always present.
func Fixed(name string, value string) FilterField {
	return FilterField{Name: name, Value: &value}
}

// BuildFilter keeps only fields whose value is present. An empty string is a
// present value; only a nil pointer marks absence.
func BuildFilter(fields ...FilterField) Filter {
	out := Filter{}
	for _, field := range fields {
		if field.Name == "" || field.Value == nil {
			continue
		}
		out[field.Name] = *field.Value
	}
	return out
}

// With returns a copy of f with name forced to value.
func (f Filter) With(name string, value string) Filter {
	out := make(Filter, len(f)+1)
	for key, current := range f {
		out[key] = current
	}
	out[name] = value
	return out
}

func (f Filter) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Matches reports whether every constraint in f is satisfied by fields.
func (f Filter) Matches(fields map[string]string) bool {
	for key, want := range f {
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
