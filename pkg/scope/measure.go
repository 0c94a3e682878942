package scope

// PeakToPeak returns max-min of values, or 0 for an empty slice.
func PeakToPeak(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi - lo
}

// EstimateFrequency estimates the signal frequency from the average distance
// between upward crossings of the mean. It returns 0 when fewer than two
// crossings are present.
func EstimateFrequency(values []float64, sampleRate float64) float64 {
	if len(values) < 2 || sampleRate <= 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	first, last, crossings := -1, -1, 0
	for i := 1; i < len(values); i++ {
		if sign(values[i-1]-mean) < sign(values[i]-mean) && values[i] > mean {
			if first < 0 {
				first = i
			}
			last = i
			crossings++
		}
	}
	if crossings < 2 {
		return 0
	}

	period := float64(last-first) / float64(crossings-1)
	return sampleRate / period
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
