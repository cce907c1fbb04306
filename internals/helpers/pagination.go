package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/store"
)

const (
	DefaultPage = 1
	// MaxPage menjaga (page-1)*per_page tetap jauh dari overflow int
	MaxPage = 1_000_000
)

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	DefaultOpts = Options{DefaultPerPage: 20, MaxPerPage: 100}
	AdminOpts   = Options{DefaultPerPage: 50, MaxPerPage: 500}
)

type Params struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
	Search    string
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// ParseFiber: baca ?page ?per_page (alias ?limit) ?sort_by ?order ?q dari query.
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	per := atoiDefault(firstNonEmpty(c.Query("per_page"), c.Query("limit")), opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Query("order"), c.Query("sort"))))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "asc"
		}
	}

	return Params{
		Page:      page,
		PerPage:   per,
		SortBy:    sortBy,
		SortOrder: order,
		Search:    strings.TrimSpace(firstNonEmpty(c.Query("q"), c.Query("search"))),
	}
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// Query membangun store.Query. sort_by dipetakan lewat whitelist allowed
// (key query → kolom); key tak dikenal jatuh ke defaultKey.
func (p Params) Query(allowed map[string]string, defaultKey string, searchCols ...string) store.Query {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	q := store.Query{
		OrderBy: col,
		Desc:    p.SortOrder == "desc",
		Limit:   p.Limit(),
		Offset:  p.Offset(),
	}
	if p.Search != "" && len(searchCols) > 0 {
		q.Search = &store.Search{Columns: searchCols, Term: p.Search}
	}
	return q
}

func (p Params) Pagination(total int64) *Pagination {
	pg := BuildPaginationFromPage(total, p.Page, p.PerPage)
	return &pg
}
