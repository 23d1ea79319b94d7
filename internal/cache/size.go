package cache

// estimateSize approximates the in-memory footprint of a value in
// bytes. Only the shapes the pipeline actually caches are sized
// precisely; anything else gets a flat estimate, which is enough to
// keep the byte budget meaningful.
func estimateSize(value any) int64 {
	switch v := value.(type) {
	case string:
		return int64(len(v))
	case []byte:
		return int64(len(v))
	case []float32:
		return int64(len(v)) * 4
	case []float64:
		return int64(len(v)) * 8
	case [][]float32:
		var total int64
		for _, row := range v {
			total += int64(len(row)) * 4
		}
		return total
	default:
		return 100
	}
}
