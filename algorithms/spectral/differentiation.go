package spectral

// Differentiate replaces Data with its order-th spectral derivative and
// returns the receiver so calls can be chained. Negative orders integrate.
// Order 0 leaves the trace untouched.
//
// Data is treated as one period (of length 2*pi) of a sequence: it is
// transformed, bin j is multiplied by (i*k_j)^order with k_j the signed
// wavenumber, and transformed back. The mean term is dropped, as is the
// Nyquist term for even lengths.
//
// This mutates the trace in place; keep a Copy if the original is needed,
// or use Derivative.
func (ft *FrequencyTrace) Differentiate(order int) *FrequencyTrace {
	ft.Data = spectralDiff(ft.Data, order)
	return ft
}

// Integrate is Differentiate with the sign of order flipped. It mutates the
// trace in place and returns it.
func (ft *FrequencyTrace) Integrate(order int) *FrequencyTrace {
	return ft.Differentiate(-order)
}

// Derivative returns a new trace holding the order-th spectral derivative,
// leaving the receiver unchanged.
func (ft *FrequencyTrace) Derivative(order int) *FrequencyTrace {
	return ft.Copy().Differentiate(order)
}

// Antiderivative returns a new trace holding the order-th spectral integral,
// leaving the receiver unchanged.
func (ft *FrequencyTrace) Antiderivative(order int) *FrequencyTrace {
	return ft.Copy().Integrate(order)
}

func spectralDiff(x []complex128, order int) []complex128 {
	if order == 0 || len(x) == 0 {
		return x
	}

	f := NewFFT()
	n := len(x)
	coeffs := f.Compute(x)

	for j := range coeffs {
		coeffs[j] *= diffKernel(j, n, order)
	}

	return f.ComputeInverse(coeffs)
}

// diffKernel returns (i*k)^order for bin j of an n-point transform.
func diffKernel(j, n, order int) complex128 {
	if j == 0 {
		return 0
	}
	if n%2 == 0 && j == n/2 {
		return 0
	}

	k := j
	if j > n/2 {
		k = j - n
	}

	return intPow(complex(0, float64(k)), order)
}

// intPow raises z to an integer power by repeated squaring.
func intPow(z complex128, p int) complex128 {
	if p < 0 {
		return 1 / intPow(z, -p)
	}

	result := complex(1, 0)
	for p > 0 {
		if p&1 == 1 {
			result *= z
		}
		z *= z
		p >>= 1
	}
	return result
}
