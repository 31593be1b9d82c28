package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive int32 identifier from a path or form value
func ParseID(s string) (int32, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return int32(id), nil
}

// ParseOptionalID returns nil for an empty value
func ParseOptionalID(s string) (*int32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := ParseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseIDList accepts repeated values and comma-separated lists, skipping blanks
func ParseIDList(values []string) ([]int32, error) {
	var ids []int32
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Pagination converts a 1-based page number into limit/offset
func Pagination(page string, pageSize int32) (limit, offset, current int32) {
	n, err := strconv.Atoi(page)
	if err != nil || n < 1 {
		n = 1
	}
	return pageSize, int32(n-1) * pageSize, int32(n)
}

// TotalPages returns the page count for total items, at least 1
func TotalPages(total, pageSize int32) int32 {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
