package viewmodels

type PaginationViewData struct {
	Page        int
	TotalPages  int
	PerPage     int
	ShowingFrom int
	ShowingTo   int
	Total       int
	PrevHref    string
	NextHref    string
}
