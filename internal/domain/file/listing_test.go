package file

import (
	"testing"
	"time"
)

func names(files []Descriptor) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func equalNames(t *testing.T, got []Descriptor, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestParseSortDefaults(t *testing.T) {
	cases := map[string]SortKey{
		"date_asc":  SortDateAsc,
		"date_desc": SortDateDesc,
		"asc":       SortNameAsc,
		"desc":      SortNameDesc,
		"":          SortDateDesc,
		"size":      SortDateDesc,
		"ASC":       SortDateDesc,
	}
	for in, want := range cases {
		if got := ParseSort(in); got != want {
			t.Errorf("ParseSort(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseFilterDefaults(t *testing.T) {
	cases := map[string]FilterKey{
		"all":  FilterAll,
		"c":    FilterC,
		"jpg":  FilterJPG,
		"":     FilterAll,
		"png":  FilterAll,
		"JPG":  FilterAll,
		"text": FilterAll,
	}
	for in, want := range cases {
		if got := ParseFilter(in); got != want {
			t.Errorf("ParseFilter(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFilterC(t *testing.T) {
	files := []Descriptor{{Name: "x.c"}, {Name: "x.C"}, {Name: "y.txt"}, {Name: "z.cpp"}}
	equalNames(t, FilterC.Apply(files), "x.c", "x.C")
}

func TestFilterJPG(t *testing.T) {
	files := []Descriptor{{Name: "a.jpg"}, {Name: "b.JPEG"}, {Name: "c.png"}, {Name: "jpg"}}
	equalNames(t, FilterJPG.Apply(files), "a.jpg", "b.JPEG")
}

func TestFilterAllKeepsEverything(t *testing.T) {
	files := []Descriptor{{Name: "a"}, {Name: "b.c"}, {Name: "c.jpg"}}
	equalNames(t, FilterAll.Apply(files), "a", "b.c", "c.jpg")
	equalNames(t, FilterKey("bogus").Apply(files), "a", "b.c", "c.jpg")
}

func TestSortByDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	files := []Descriptor{
		{Name: "b.txt", CreatedAt: base},
		{Name: "a.txt", CreatedAt: base.Add(time.Hour)},
	}

	SortDateDesc.Apply(files)
	equalNames(t, files, "a.txt", "b.txt")

	SortDateAsc.Apply(files)
	equalNames(t, files, "b.txt", "a.txt")
}

func TestSortDateTieBreaksByName(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	files := []Descriptor{
		{Name: "c", CreatedAt: ts},
		{Name: "a", CreatedAt: ts},
		{Name: "b", CreatedAt: ts},
	}

	SortDateDesc.Apply(files)
	equalNames(t, files, "a", "b", "c")

	SortDateAsc.Apply(files)
	equalNames(t, files, "a", "b", "c")
}

func TestSortByNameIsOrdinal(t *testing.T) {
	files := []Descriptor{{Name: "b.txt"}, {Name: "B.txt"}, {Name: "a.txt"}}

	SortNameAsc.Apply(files)
	equalNames(t, files, "B.txt", "a.txt", "b.txt")

	SortNameDesc.Apply(files)
	equalNames(t, files, "b.txt", "a.txt", "B.txt")
}

func TestValidateName(t *testing.T) {
	valid := []string{"alice", "report.pdf", "..hidden", "a b.txt", "x..y"}
	for _, n := range valid {
		if err := ValidateName(n); err != nil {
			t.Errorf("ValidateName(%q): expected nil, got %v", n, err)
		}
	}

	invalid := []string{"", ".", "..", "../etc", "a/b", `a\b`, "nul\x00"}
	for _, n := range invalid {
		if err := ValidateName(n); err != ErrInvalidName {
			t.Errorf("ValidateName(%q): expected ErrInvalidName, got %v", n, err)
		}
	}
}

func TestPreviewTypeFor(t *testing.T) {
	cases := map[string]PreviewType{
		"photo.png":   PreviewImage,
		"photo.JPEG":  PreviewImage,
		"anim.gif":    PreviewImage,
		"pic.webp":    PreviewImage,
		"main.c":      PreviewText,
		"Program.CS":  PreviewText,
		"index.html":  PreviewText,
		"archive.zip": PreviewUnsupported,
		"README":      PreviewUnsupported,
		"image.svg":   PreviewUnsupported,
	}
	for name, want := range cases {
		if got := PreviewTypeFor(name); got != want {
			t.Errorf("PreviewTypeFor(%q): expected %q, got %q", name, want, got)
		}
	}
}

func TestImageMimeType(t *testing.T) {
	cases := map[string]string{
		"a.png":  "image/png",
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.gif":  "image/gif",
		"a.webp": "image/webp",
	}
	for name, want := range cases {
		if got := ImageMimeType(name); got != want {
			t.Errorf("ImageMimeType(%q): expected %q, got %q", name, want, got)
		}
	}
}
