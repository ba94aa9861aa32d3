package gallery

// PageSizes are the selectable cards-per-page options. The order matters: the
// size selector cycles through them.
var PageSizes = []int{5, 10, 20, 35, 50}

// DefaultPageSize is used when the config does not pick one of PageSizes.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of the selectable options.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Paginator derives the visible slice of a history sequence from a 1-based
// page number and a page size. It does no I/O and holds no item data.
type Paginator struct {
	page int
	size int
}

// NewPaginator starts at page 1 with the given size, falling back to
// DefaultPageSize when size is not a selectable option.
func NewPaginator(size int) Paginator {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	return Paginator{page: 1, size: size}
}

func (p Paginator) Page() int { return p.page }
func (p Paginator) Size() int { return p.size }

// TotalPages is ceil(n/size), never less than 1 so page 1 always exists.
func (p Paginator) TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + p.size - 1) / p.size
}

// SetPage clamps to [1, TotalPages(n)].
func (p Paginator) SetPage(page, n int) Paginator {
	total := p.TotalPages(n)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	p.page = page
	return p
}

// NextPage advances by one page, saturating at the last page.
func (p Paginator) NextPage(n int) Paginator {
	return p.SetPage(p.page+1, n)
}

// PrevPage steps back one page, saturating at page 1.
func (p Paginator) PrevPage(n int) Paginator {
	return p.SetPage(p.page-1, n)
}

// SetSize switches to a new page size and resets to page 1, since slice
// boundaries shift and the old page number may be out of range. Invalid sizes
// are ignored.
func (p Paginator) SetSize(size int) Paginator {
	if !ValidPageSize(size) {
		return p
	}
	p.size = size
	p.page = 1
	return p
}

// CycleSize advances to the next entry in PageSizes, wrapping around. Like
// SetSize it resets to page 1.
func (p Paginator) CycleSize() Paginator {
	for i, s := range PageSizes {
		if s == p.size {
			return p.SetSize(PageSizes[(i+1)%len(PageSizes)])
		}
	}
	return p.SetSize(DefaultPageSize)
}

// VisibleSlice returns the sub-sequence of history shown on the current page.
// The returned slice aliases history; callers must not mutate it.
func (p Paginator) VisibleSlice(history []string) []string {
	start := (p.page - 1) * p.size
	if start >= len(history) {
		return nil
	}
	end := start + p.size
	if end > len(history) {
		end = len(history)
	}
	return history[start:end]
}
