package order

import (
	"strconv"
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// TotalQuantity sums every entry of every size. Blank, non-numeric and
// negative quantities count as zero.
func TotalQuantity(sizes domain.Sizes) int {
	total := 0
	for _, entries := range sizes {
		for _, entry := range entries {
			total += parseQuantity(entry.Quantity)
		}
	}
	return total
}

func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
