package domain

type SortOrderByEnum int

const (
	UnknownSortOrderByEnum SortOrderByEnum = iota
	ASCSortOrderByEnum
	DESCSortOrderByEnum
)
