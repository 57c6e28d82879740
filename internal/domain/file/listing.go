package file

import (
	"slices"
	"strings"
)

// SortKey selects the order of a listing
type SortKey string

const (
	SortDateAsc  SortKey = "date_asc"
	SortDateDesc SortKey = "date_desc"
	SortNameAsc  SortKey = "asc"
	SortNameDesc SortKey = "desc"
)

// FilterKey selects which extensions a listing keeps
type FilterKey string

const (
	FilterAll FilterKey = "all"
	FilterC   FilterKey = "c"
	FilterJPG FilterKey = "jpg"
)

var filterExtensions = map[FilterKey][]string{
	FilterC:   {".c"},
	FilterJPG: {".jpg", ".jpeg"},
}

// ParseSort returns the sort key for s. Unknown values fall back to SortDateDesc.
func ParseSort(s string) SortKey {
	switch k := SortKey(s); k {
	case SortDateAsc, SortDateDesc, SortNameAsc, SortNameDesc:
		return k
	default:
		return SortDateDesc
	}
}

// ParseFilter returns the filter key for s. Unknown values fall back to FilterAll.
func ParseFilter(s string) FilterKey {
	switch k := FilterKey(s); k {
	case FilterAll, FilterC, FilterJPG:
		return k
	default:
		return FilterAll
	}
}

// Matches reports whether d passes the filter. Extensions are compared
// case-insensitively.
func (f FilterKey) Matches(d Descriptor) bool {
	exts, ok := filterExtensions[f]
	if !ok {
		return true
	}
	return slices.Contains(exts, d.Extension())
}

// Apply keeps the descriptors matching f, preserving their order
func (f FilterKey) Apply(files []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(files))
	for _, d := range files {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

// Apply sorts files in place. Names are compared byte-wise; date sorts
// break ties by ascending name so results are deterministic.
func (s SortKey) Apply(files []Descriptor) {
	slices.SortStableFunc(files, s.compare)
}

func (s SortKey) compare(a, b Descriptor) int {
	byName := strings.Compare(a.Name, b.Name)
	switch s {
	case SortNameAsc:
		return byName
	case SortNameDesc:
		return -byName
	case SortDateAsc:
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return byName
	default:
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return byName
	}
}

// ValidateName rejects identities and file names that would escape the
// namespace directory: empty names, "." and "..", and anything containing
// a path separator or NUL byte.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidName
	}
	return nil
}
