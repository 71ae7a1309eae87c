package board

import (
	"sort"

	"wealthy-cats/entities"
)

// SelectCoinsForAmount walks coins from largest to smallest and keeps each
// one that still fits under target. The result sums to at most target; it
// is exact only when the greedy walk happens to land on it.
func SelectCoinsForAmount(coins []*entities.Coin, target int) []*entities.Coin {
	sorted := sortedDesc(coins)
	var selected []*entities.Coin
	sum := 0
	for _, c := range sorted {
		if sum+c.Value <= target {
			selected = append(selected, c)
			sum += c.Value
		}
		if sum == target {
			break
		}
	}
	return selected
}

// SmallestAbove returns the lowest-valued coin worth more than target, or nil.
func SmallestAbove(coins []*entities.Coin, target int) *entities.Coin {
	var best *entities.Coin
	for _, c := range coins {
		if c.Value > target && (best == nil || c.Value < best.Value) {
			best = c
		}
	}
	return best
}

// BreakDown splits a coin worth value into smaller denominations only.
func BreakDown(value int) []int {
	var smaller []int
	for _, d := range entities.Denominations {
		if d < value {
			smaller = append(smaller, d)
		}
	}
	var parts []int
	remaining := value
	for remaining > 0 {
		next := 1
		for _, d := range smaller {
			if d <= remaining {
				next = d
				break
			}
		}
		parts = append(parts, next)
		remaining -= next
	}
	return parts
}

// MakeChange returns amount as the fewest coins.
func MakeChange(amount int) []int {
	var parts []int
	remaining := amount
	for _, d := range entities.Denominations {
		for remaining >= d {
			parts = append(parts, d)
			remaining -= d
		}
	}
	return parts
}

// PartitionIntoBuckets deals coins, largest first, into n buckets that each
// take coins until they hold perBucket. Whatever fits nowhere goes into
// bucket 0.
func PartitionIntoBuckets(coins []*entities.Coin, n, perBucket int) [][]*entities.Coin {
	if n <= 0 {
		return nil
	}
	pool := sortedDesc(coins)
	buckets := make([][]*entities.Coin, n)
	for i := range buckets {
		sum := 0
		rest := pool[:0:0]
		for _, c := range pool {
			if sum+c.Value <= perBucket {
				buckets[i] = append(buckets[i], c)
				sum += c.Value
			} else {
				rest = append(rest, c)
			}
		}
		pool = rest
	}
	buckets[0] = append(buckets[0], pool...)
	return buckets
}

func sortedDesc(coins []*entities.Coin) []*entities.Coin {
	out := make([]*entities.Coin, len(coins))
	copy(out, coins)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}
