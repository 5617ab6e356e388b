package utils

// CalculateTotalPages returns how many pages of perPage items hold total
// items; zero when either is not positive.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
