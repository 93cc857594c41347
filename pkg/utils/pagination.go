package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

func ParsePaginationParams(values url.Values) (limit uint64, offset uint64, page uint64) {
	limit = DefaultLimit
	page = 1

	if l, err := strconv.ParseUint(values.Get("limit"), 10, 64); err == nil && l > 0 {
		limit = l
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	if p, err := strconv.ParseUint(values.Get("page"), 10, 64); err == nil && p > 0 {
		page = p
	}

	if o, err := strconv.ParseUint(values.Get("offset"), 10, 64); err == nil {
		offset = o
	} else {
		offset = (page - 1) * limit
	}
	return limit, offset, page
}
