package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaginationParams carries the list-endpoint query knobs. Sort uses a
// leading "-" for descending order, e.g. "-created_at".
type PaginationParams struct {
	Page       int    `json:"page" form:"page"`
	Limit      int    `json:"limit" form:"limit"`
	Sort       string `json:"sort" form:"sort"`
	SearchTerm string `json:"search_term" form:"searchTerm"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func GetPaginationParams(c *gin.Context) *PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < MinPageSize {
		limit = MinPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return &PaginationParams{
		Page:       page,
		Limit:      limit,
		Sort:       c.DefaultQuery("sort", "-created_at"),
		SearchTerm: c.Query("searchTerm"),
	}
}

func (p *PaginationParams) GetSkip() int {
	return (p.Page - 1) * p.Limit
}

func (p *PaginationParams) GetLimit() int {
	return p.Limit
}

func (p *PaginationParams) GetSortOptions() *options.FindOptions {
	opts := options.Find()
	opts.SetSkip(int64(p.GetSkip()))
	opts.SetLimit(int64(p.GetLimit()))

	field := p.Sort
	order := 1
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		order = -1
	}
	if field == "" {
		field = "created_at"
		order = -1
	}
	opts.SetSort(bson.D{{Key: field, Value: order}})

	return opts
}

// GetSearchFilter builds a case-insensitive $or regex filter over the
// given fields.
func (p *PaginationParams) GetSearchFilter(fields []string) bson.M {
	if p.SearchTerm == "" || len(fields) == 0 {
		return bson.M{}
	}

	conditions := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, bson.M{
			field: bson.M{"$regex": p.SearchTerm, "$options": "i"},
		})
	}

	return bson.M{"$or": conditions}
}

// RangeFilter builds an inclusive numeric range filter for a field,
// used by the car catalog's price and rating filters. Nil bounds are
// open ended.
func RangeFilter(field string, min, max *float64) bson.M {
	bounds := bson.M{}
	if min != nil {
		bounds["$gte"] = *min
	}
	if max != nil {
		bounds["$lte"] = *max
	}
	if len(bounds) == 0 {
		return bson.M{}
	}
	return bson.M{field: bounds}
}

func CreatePaginationMeta(params *PaginationParams, total int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return &PaginationMeta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
