package viewer

import (
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PerPage is the fixed listing page size
	PerPage = 10

	PrevLabel = "Anterior"
	NextLabel = "Siguiente"

	// MaxPage caps requested page numbers so offsets stay far from overflow
	MaxPage = 1 << 30

	// pages shown on each side of the current one, and at each end
	innerWindow = 2
	outerWindow = 1
)

var printer = message.NewPrinter(language.Spanish)

// PageLink is one entry of the page list. Gap entries have no number.
type PageLink struct {
	Number int
	URL    string
	Active bool
	Gap    bool
}

// Pagination is the page bar state of one listing
type Pagination struct {
	Page       int
	Total      int64
	PerPage    int
	TotalPages int

	// Start and End are the 1-based positions of the rows shown, 0 when none
	Start int64
	End   int64

	Prev      int // 0 when on the first page
	Next      int // 0 when on the last page
	PrevURL   string
	NextURL   string
	PrevLabel string
	NextLabel string

	Message template.HTML
	Links   []PageLink
}

// HasPrev reports whether a previous page exists
func (p Pagination) HasPrev() bool { return p.Prev > 0 }

// HasNext reports whether a next page exists
func (p Pagination) HasNext() bool { return p.Next > 0 }

// NewPagination computes the page bar. url builds the link of a page number.
// A listing with no records still has one page.
func NewPagination(page int, total int64, perPage int, url func(int) string) Pagination {
	page = clampPage(page)
	if perPage < 1 {
		perPage = PerPage
	}
	if url == nil {
		url = func(n int) string { return fmt.Sprintf("?page=%d", n) }
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	p := Pagination{
		Page:       page,
		Total:      total,
		PerPage:    perPage,
		TotalPages: totalPages,
		PrevLabel:  PrevLabel,
		NextLabel:  NextLabel,
	}

	offset := int64(page-1) * int64(perPage)
	if offset < total {
		p.Start = offset + 1
		p.End = min(offset+int64(perPage), total)
	}

	if page > 1 {
		p.Prev = min(page-1, totalPages)
		p.PrevURL = url(p.Prev)
	}
	if page < totalPages {
		p.Next = page + 1
		p.NextURL = url(p.Next)
	}

	p.Message = template.HTML(fmt.Sprintf(
		"Mostrando registros <b>%s</b> a <b>%s</b> de <b>%s</b>",
		formatNumber(p.Start), formatNumber(p.End), formatNumber(total)))

	p.Links = pageLinks(page, totalPages, url)
	return p
}

func clampPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > MaxPage:
		return MaxPage
	}
	return page
}

// pageLinks lists the first and last pages and a window around the current
// one, with a gap entry wherever numbers are skipped
func pageLinks(page, totalPages int, url func(int) string) []PageLink {
	var links []PageLink
	last := 0
	for n := 1; n <= totalPages; n++ {
		inWindow := n >= page-innerWindow && n <= page+innerWindow
		atEdge := n <= outerWindow || n > totalPages-outerWindow
		if !inWindow && !atEdge {
			continue
		}
		if last > 0 && n > last+1 {
			links = append(links, PageLink{Gap: true})
		}
		links = append(links, PageLink{Number: n, URL: url(n), Active: n == page})
		last = n
	}
	return links
}

// formatNumber groups digits the Spanish way
func formatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
