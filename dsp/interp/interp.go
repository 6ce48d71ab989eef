package interp

// Mode selects an interpolation method.
type Mode int

const (
	Hermite Mode = iota
	Linear
)

func (m Mode) String() string {
	switch m {
	case Hermite:
		return "Hermite"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Taps returns how many samples the method reads and how many of them lie
// before the interpolated interval.
func (m Mode) Taps() (n, before int) {
	if m == Linear {
		return 2, 0
	}
	return 4, 1
}

// Interpolate evaluates the method at t in [0,1] over the tap values in
// order. taps must hold at least as many values as Taps reports.
func (m Mode) Interpolate(t float64, taps []float64) float64 {
	if m == Linear {
		return Linear2(t, taps[0], taps[1])
	}
	return Hermite4(t, taps[0], taps[1], taps[2], taps[3])
}

// Linear2 interpolates from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
