package tour

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"
)

// Fingerprint identifies a run by its point set and worker count. Runs are
// deterministic, so two runs with the same fingerprint give the same result.
func Fingerprint(points []Point, size int) string {
	h := murmur3.New128()

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	writeUint(uint64(size))
	writeUint(uint64(len(points)))
	for _, p := range points {
		writeUint(uint64(len(p.Name)))
		_, _ = h.Write([]byte(p.Name))
		writeUint(math.Float64bits(p.X))
		writeUint(math.Float64bits(p.Y))
	}

	hi, lo := h.Sum128()
	return fmt.Sprintf("%016x%016x", hi, lo)
}
