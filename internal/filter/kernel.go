package filter

import (
	"math"

	"github.com/gogpu/postfx/internal/cache"
)

// Kernel is a normalized, symmetric 1D convolution kernel.
// Weights has 2*Radius+1 entries and sums to 1.
type Kernel struct {
	Weights []float32
	Radius  int
}

// identity is the kernel of a zero-sigma blur.
var identity = Kernel{Weights: []float32{1}}

// IsIdentity reports whether convolving with k leaves an image unchanged.
func (k Kernel) IsIdentity() bool {
	return k.Radius == 0
}

// GaussianKernel generates a 1D Gaussian kernel for standard deviation sigma.
//
// The kernel extends ceil(3*sigma) taps on each side of the centre, which
// covers 99.7% of the distribution. For sigma <= 0 (or NaN) the identity
// kernel is returned.
func GaussianKernel(sigma float64) Kernel {
	if !(sigma > 0) {
		return identity
	}

	radius := int(math.Ceil(sigma * 3))
	weights := make([]float32, 2*radius+1)

	// G(x) = exp(-x²/(2σ²)); the 1/(σ√(2π)) factor cancels when normalizing.
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range weights {
		x := float64(i - radius)
		w := math.Exp(-(x * x) / twoSigmaSq)
		weights[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range weights {
		weights[i] *= inv
	}

	return Kernel{Weights: weights, Radius: radius}
}

// KernelSize returns the number of taps GaussianKernel(sigma) produces.
func KernelSize(sigma float64) int {
	if !(sigma > 0) {
		return 1
	}
	return 2*int(math.Ceil(sigma*3)) + 1
}

// kernelCacheSize bounds the number of memoized kernels.
const kernelCacheSize = 128

// sharedKernels memoizes kernels by sigma quantized to 1/100 px.
// Animated blur amounts revisit the same handful of sigmas every frame.
var sharedKernels = cache.New[int, Kernel](kernelCacheSize)

func cachedKernel(c *cache.Cache[int, Kernel], sigma float64) Kernel {
	if !(sigma > 0) {
		return identity
	}
	key := int(math.Round(sigma * 100))
	return c.GetOrCreate(key, func() Kernel {
		return GaussianKernel(float64(key) / 100)
	})
}

// CachedGaussianKernel returns a memoized GaussianKernel for sigma.
// The returned weights are shared and must not be modified.
func CachedGaussianKernel(sigma float64) Kernel {
	return cachedKernel(sharedKernels, sigma)
}
