package encoder

// Resample converts a mono buffer from srcRate to dstRate by linear
// interpolation. Matching rates pass straight through. Linear blending is
// plenty for speech; anything fancier buys nothing the recognizer can use.
func Resample(in []float32, srcRate, dstRate uint32) []float32 {
	if srcRate == dstRate || len(in) == 0 {
		return in
	}
	ratio := float64(dstRate) / float64(srcRate)
	outLen := int(float64(len(in))*ratio + 0.5)
	out := make([]float32, 0, outLen)
	for i := 0; i < outLen; i++ {
		pos := float64(i) / ratio
		idx := int(pos)
		frac := float32(pos - float64(idx))
		s0 := sampleAt(in, idx)
		s1 := sampleAt(in, idx+1)
		out = append(out, s0+(s1-s0)*frac)
	}
	return out
}

func sampleAt(in []float32, i int) float32 {
	if i < 0 || i >= len(in) {
		if len(in) == 0 {
			return 0
		}
		if i < 0 {
			return in[0]
		}
		return in[len(in)-1]
	}
	return in[i]
}

// Downmix collapses an interleaved buffer to mono by averaging each frame.
// Already-mono input is returned unchanged.
func Downmix(in []float32, channels uint32) []float32 {
	if channels <= 1 || len(in) == 0 {
		return in
	}
	n := int(channels)
	out := make([]float32, 0, len(in)/n)
	for i := 0; i+n <= len(in); i += n {
		var sum float32
		for j := 0; j < n; j++ {
			sum += in[i+j]
		}
		out = append(out, sum/float32(n))
	}
	return out
}
