package preview

import (
	"log/slog"
	"testing"

	"docsrouter/constants"
)

func TestCategoryForFile(t *testing.T) {
	cases := []struct {
		filename string
		want     constants.FileCategory
	}{
		{"a.PDF", constants.PDF},
		{"doc.pdf", constants.PDF},
		{"scan.JPeG", constants.IMAGE},
		{"pic.webp", constants.IMAGE},
		{"a.tar.gz", constants.UNKNOWN},
		{"noext", constants.UNKNOWN},
		{"", constants.UNKNOWN},
		{"trailing.", constants.UNKNOWN},
	}
	for _, tc := range cases {
		if got := constants.CategoryForFile(tc.filename); got != tc.want {
			t.Errorf("CategoryForFile(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestPageStoreClamping(t *testing.T) {
	s := NewPageStore()
	const file = "multi.pdf"
	const total = 4

	if got := s.Current(file); got != 1 {
		t.Fatalf("initial page = %d, want 1", got)
	}

	// previous from page 1 stays at page 1
	if got := s.Prev(file); got != 1 {
		t.Errorf("Prev at lower bound = %d, want 1", got)
	}

	// next N-1 times reaches the last page
	for i := 0; i < total-1; i++ {
		s.Next(file, total)
	}
	if got := s.Current(file); got != total {
		t.Errorf("after %d nexts page = %d, want %d", total-1, got, total)
	}

	// one more next clamps, does not wrap
	if got := s.Next(file, total); got != total {
		t.Errorf("Next at upper bound = %d, want %d", got, total)
	}

	if got := s.Select(file, 99, total); got != total {
		t.Errorf("Select beyond total = %d, want %d", got, total)
	}
	if got := s.Select(file, 0, total); got != 1 {
		t.Errorf("Select below 1 = %d, want 1", got)
	}

	// state is per file
	if got := s.Current("other.pdf"); got != 1 {
		t.Errorf("other file page = %d, want 1", got)
	}
}

func newTestRenderer() *Renderer {
	return NewRenderer(NewPageStore(), slog.Default())
}

func TestRenderImage(t *testing.T) {
	r := newTestRenderer()

	t.Run("bytes preferred over link", func(t *testing.T) {
		v := r.Render("scan.png", "https://example.test/scan.png", []byte{1, 2, 3}, 2.0)
		if v.Kind != KindImageBytes {
			t.Fatalf("kind = %q, want %q", v.Kind, KindImageBytes)
		}
		if len(v.ImageData) != 3 {
			t.Errorf("image data length = %d, want 3", len(v.ImageData))
		}
	})

	t.Run("link when no bytes", func(t *testing.T) {
		v := r.Render("scan.png", "https://example.test/scan.png", nil, 2.0)
		if v.Kind != KindImageLink || v.ImageURL == "" {
			t.Errorf("kind = %q url = %q, want image_link with url", v.Kind, v.ImageURL)
		}
	})

	t.Run("placeholder when nothing available", func(t *testing.T) {
		v := r.Render("scan.png", "", nil, 2.0)
		if v.Kind != KindPlaceholder || v.Placeholder != MsgNoData {
			t.Errorf("got kind=%q placeholder=%q", v.Kind, v.Placeholder)
		}
	})
}

func TestRenderPDF(t *testing.T) {
	r := newTestRenderer()

	t.Run("garbage bytes degrade to placeholder", func(t *testing.T) {
		v := r.Render("bad.pdf", "https://example.test/bad.pdf", []byte("definitely not a pdf"), 1.5)
		if v.Kind != KindPlaceholder || v.Placeholder != MsgUnavailable {
			t.Errorf("got kind=%q placeholder=%q", v.Kind, v.Placeholder)
		}
		// download affordance survives a failed inline render
		if v.DownloadURL == "" {
			t.Error("expected download url to be kept")
		}
	})

	t.Run("no bytes with link is download only", func(t *testing.T) {
		v := r.Render("doc.pdf", "https://example.test/doc.pdf", nil, 1.5)
		if v.Kind != KindDownloadOnly {
			t.Errorf("kind = %q, want %q", v.Kind, KindDownloadOnly)
		}
	})

	t.Run("no bytes and no link is unavailable", func(t *testing.T) {
		v := r.Render("doc.pdf", "", nil, 1.5)
		if v.Kind != KindPlaceholder || v.Placeholder != MsgUnavailable {
			t.Errorf("got kind=%q placeholder=%q", v.Kind, v.Placeholder)
		}
	})
}

func TestRenderPages(t *testing.T) {
	r := newTestRenderer()
	const file = "tri.pdf"
	doc := &Document{pages: []string{"one", "two", "three"}}

	render := func() View {
		v := View{FileName: file, Category: constants.PDF}
		r.renderPages(&v, file, doc, 1.5)
		return v
	}

	t.Run("single page has caption and no nav", func(t *testing.T) {
		single := &Document{pages: []string{"only"}}
		v := View{FileName: "one.pdf", Category: constants.PDF}
		r.renderPages(&v, "one.pdf", single, 1.5)
		if v.Page == nil || v.Page.Caption != "Page 1 of 1" {
			t.Fatalf("page = %+v, want caption Page 1 of 1", v.Page)
		}
		if v.Nav != nil {
			t.Error("single page must not render navigation")
		}
	})

	t.Run("zero pages yields placeholder", func(t *testing.T) {
		empty := &Document{}
		v := View{FileName: "empty.pdf", Category: constants.PDF}
		r.renderPages(&v, "empty.pdf", empty, 1.5)
		if v.Kind != KindPlaceholder || v.Placeholder != MsgNoPages {
			t.Errorf("got kind=%q placeholder=%q", v.Kind, v.Placeholder)
		}
	})

	t.Run("next next previous lands on page 2 of 3", func(t *testing.T) {
		v := render()
		if v.Nav == nil || v.Nav.PrevEnabled {
			t.Fatalf("initial nav = %+v, want prev disabled", v.Nav)
		}

		r.Pages().Next(file, doc.PageCount())
		r.Pages().Next(file, doc.PageCount())
		r.Pages().Prev(file)

		v = render()
		if v.Page.Caption != "Page 2 of 3" {
			t.Errorf("caption = %q, want %q", v.Page.Caption, "Page 2 of 3")
		}
		if v.Page.Text != "two" {
			t.Errorf("page text = %q, want two", v.Page.Text)
		}
		if !v.Nav.PrevEnabled || !v.Nav.NextEnabled {
			t.Errorf("nav = %+v, want both directions enabled", v.Nav)
		}
	})

	t.Run("stale stored page is clamped on render", func(t *testing.T) {
		r.Pages().Select(file, 3, 3)
		shorter := &Document{pages: []string{"a", "b"}}
		v := View{FileName: file, Category: constants.PDF}
		r.renderPages(&v, file, shorter, 1.5)
		if v.Page.Number != 2 {
			t.Errorf("page = %d, want clamped to 2", v.Page.Number)
		}
	})
}
