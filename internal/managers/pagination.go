package managers

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one page of a listing. Zero values fall back to the
// first page with the default size.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	switch {
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	}
	return p
}

// Paginate is a GORM scope that applies offset and limit for the request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	req = req.normalize()
	return func(db *gorm.DB) *gorm.DB {
		offset := (req.Page - 1) * req.PageSize
		return db.Offset(offset).Limit(req.PageSize)
	}
}

// PageInfo describes the page that was returned.
type PageInfo struct {
	TotalRows   int64
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// NewPageInfo computes the page metadata for a listing.
func NewPageInfo(req PageRequest, totalRows int64) PageInfo {
	req = req.normalize()
	totalPages := 0
	if totalRows > 0 {
		totalPages = int(math.Ceil(float64(totalRows) / float64(req.PageSize)))
	}
	return PageInfo{
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		CurrentPage: req.Page,
		PageSize:    req.PageSize,
	}
}
