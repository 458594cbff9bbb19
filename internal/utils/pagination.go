// Package utils holds small parsing helpers shared by the HTTP layer.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or invalid.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// PageParams parses page and page_size query values. page is at least 1;
// page_size defaults to def and is bounded to [1, maxSize].
func PageParams(pageRaw, sizeRaw string, def, maxSize int) (page, pageSize int) {
	page = max(AtoiDefault(pageRaw, 1), 1)
	pageSize = AtoiDefault(sizeRaw, def)
	return page, min(max(pageSize, 1), maxSize)
}

// TotalPages is the number of pages of pageSize needed for total items.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
