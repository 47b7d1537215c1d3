package tour

import "fmt"

// Partitions splits [0, n) into size contiguous ranges ordered by rank.
// Every range holds n/size points except the last one, which also takes
// the remainder.
func Partitions(n, size int) ([]Partition, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrConfiguration, size)
	}
	if size > n {
		return nil, fmt.Errorf("%w: %d workers for %d points", ErrConfiguration, size, n)
	}

	parts := make([]Partition, size)
	for rank := range size {
		parts[rank] = PartitionOf(rank, size, n)
	}

	return parts, nil
}

// PartitionOf is the range a rank derives for itself from the broadcast
// point count. It does no validation; with size > n the leading ranks get
// empty ranges.
func PartitionOf(rank, size, n int) Partition {
	per := n / size

	hi := (rank + 1) * per
	if rank == size-1 {
		hi = n
	}

	return Partition{Rank: rank, Lo: rank * per, Hi: hi}
}
