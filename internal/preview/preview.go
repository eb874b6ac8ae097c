// Package preview builds the document preview shown next to the review
// editor. This layer does not rasterize anything; it emits a view model
// describing what the client should draw, including pagination state for
// multi-page PDFs.
package preview

import (
	"fmt"
	"log/slog"

	"docsrouter/constants"
)

// Placeholder messages surfaced instead of a rendering.
const (
	MsgNoData      = "No document data available."
	MsgUnavailable = "PDF preview unavailable."
	MsgNoPages     = "PDF has no pages."
	MsgUnsupported = "Unsupported file type for preview."
)

// ViewKind says what the client should draw.
type ViewKind string

const (
	KindImageBytes   ViewKind = "image_bytes"
	KindImageLink    ViewKind = "image_link"
	KindPDFPage      ViewKind = "pdf_page"
	KindDownloadOnly ViewKind = "download_only"
	KindPlaceholder  ViewKind = "placeholder"
)

// View is the render model for one document preview.
type View struct {
	FileName    string                 `json:"file_name"`
	Category    constants.FileCategory `json:"category"`
	Kind        ViewKind               `json:"kind"`
	ImageData   []byte                 `json:"image_data,omitempty"`
	ImageURL    string                 `json:"image_url,omitempty"`
	Page        *PageView              `json:"page,omitempty"`
	Nav         *NavView               `json:"nav,omitempty"`
	DownloadURL string                 `json:"download_url,omitempty"`
	Placeholder string                 `json:"placeholder,omitempty"`
}

// PageView is the current PDF page with its caption and magnification.
type PageView struct {
	Number  int     `json:"number"`
	Total   int     `json:"total"`
	Caption string  `json:"caption"`
	Scale   float64 `json:"scale"`
	Text    string  `json:"text"`
}

// NavView describes the pagination controls; present only for multi-page
// documents. Prev/Next are disabled at the bounds.
type NavView struct {
	Current     int  `json:"current"`
	Total       int  `json:"total"`
	PrevEnabled bool `json:"prev_enabled"`
	NextEnabled bool `json:"next_enabled"`
}

// Renderer turns a file's bytes and/or remote link into a View, keeping the
// current page per file across renders.
type Renderer struct {
	pages  *PageStore
	logger *slog.Logger
}

func NewRenderer(pages *PageStore, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{pages: pages, logger: logger}
}

// Pages exposes the underlying page store for navigation handlers.
func (r *Renderer) Pages() *PageStore {
	return r.pages
}

// Render builds the preview for fileName. Decode failures never escape; they
// degrade to a placeholder view.
func (r *Renderer) Render(fileName, fileURL string, fileBytes []byte, scale float64) View {
	category := constants.CategoryForFile(fileName)
	view := View{FileName: fileName, Category: category}

	switch category {
	case constants.IMAGE:
		switch {
		case len(fileBytes) > 0:
			view.Kind = KindImageBytes
			view.ImageData = fileBytes
		case fileURL != "":
			view.Kind = KindImageLink
			view.ImageURL = fileURL
		default:
			view.Kind = KindPlaceholder
			view.Placeholder = MsgNoData
		}
	case constants.PDF:
		r.renderPDF(&view, fileName, fileURL, fileBytes, scale)
	default:
		if fileURL != "" {
			view.Kind = KindDownloadOnly
			view.DownloadURL = fileURL
		} else {
			view.Kind = KindPlaceholder
			view.Placeholder = MsgUnsupported
		}
	}
	return view
}

func (r *Renderer) renderPDF(view *View, fileName, fileURL string, fileBytes []byte, scale float64) {
	// The download affordance is offered whenever a link exists, regardless
	// of whether inline rendering works out.
	view.DownloadURL = fileURL

	if len(fileBytes) == 0 {
		if fileURL != "" {
			view.Kind = KindDownloadOnly
		} else {
			view.Kind = KindPlaceholder
			view.Placeholder = MsgUnavailable
		}
		return
	}

	doc, err := DecodePDF(fileBytes)
	if err != nil {
		r.logger.Warn("pdf decode failed", "file", fileName, "error", err)
		view.Kind = KindPlaceholder
		view.Placeholder = MsgUnavailable
		return
	}

	r.renderPages(view, fileName, doc, scale)
}

func (r *Renderer) renderPages(view *View, fileName string, doc *Document, scale float64) {
	total := doc.PageCount()
	switch {
	case total <= 0:
		view.Kind = KindPlaceholder
		view.Placeholder = MsgNoPages
	case total == 1:
		view.Kind = KindPDFPage
		view.Page = &PageView{
			Number:  1,
			Total:   1,
			Caption: "Page 1 of 1",
			Scale:   scale,
			Text:    doc.PageText(1),
		}
	default:
		// clamp against the freshly decoded total in case the stored page
		// belongs to an older upload under the same name
		current := r.pages.Select(fileName, r.pages.Current(fileName), total)
		view.Kind = KindPDFPage
		view.Page = &PageView{
			Number:  current,
			Total:   total,
			Caption: fmt.Sprintf("Page %d of %d", current, total),
			Scale:   scale,
			Text:    doc.PageText(current),
		}
		view.Nav = &NavView{
			Current:     current,
			Total:       total,
			PrevEnabled: current > 1,
			NextEnabled: current < total,
		}
	}
}
