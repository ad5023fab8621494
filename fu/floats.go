package fu

func Indmaxd(a []float64) int {
	j := 0
	for i, x := range a {
		if x > a[j] {
			j = i
		}
	}
	return j
}

func Indmind(a []float64) int {
	j := 0
	for i, x := range a {
		if x < a[j] {
			j = i
		}
	}
	return j
}
