package stats

import "math"

const (
	brentMaxIter = 100
	brentCGold   = 0.3819660
	brentZEps    = 1.0e-10
)

// brent minimizes f over the bracket [ax, cx] with initial guess bx,
// using golden-section search with parabolic interpolation. It returns
// the minimizing argument, the minimum value, and whether the bracket
// converged to within tol before the iteration cap.
//
// The update order and constants follow the classic Numerical Recipes
// formulation; the interval-length objective has no usable derivative,
// so a derivative-free method is required here.
func brent(ax, bx, cx, tol float64, f func(float64) float64) (xmin, fmin float64, converged bool) {
	var d, e float64

	a := math.Min(ax, cx)
	b := math.Max(ax, cx)
	x, w, v := bx, bx, bx
	fx := f(x)
	fw, fv := fx, fx

	for iter := 1; iter <= brentMaxIter; iter++ {
		xm := 0.5 * (a + b)
		tol1 := tol*math.Abs(x) + brentZEps
		tol2 := 2.0 * tol1
		if math.Abs(x-xm) <= tol2-0.5*(b-a) {
			return x, fx, true
		}
		if math.Abs(e) > tol1 {
			// Trial parabolic fit through x, w, v.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2.0 * (q - r)
			if q > 0.0 {
				p = -p
			}
			q = math.Abs(q)
			etemp := e
			e = d
			if math.Abs(p) >= math.Abs(0.5*q*etemp) || p <= q*(a-x) || p >= q*(b-x) {
				// Fit rejected: golden-section step into the larger segment.
				if x >= xm {
					e = a - x
				} else {
					e = b - x
				}
				d = brentCGold * e
			} else {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, xm-x)
				}
			}
		} else {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = brentCGold * e
		}
		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu := f(u)
		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, w, x = w, x, u
			fv, fw, fx = fw, fx, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, w = w, u
				fv, fw = fw, fu
			} else if fu <= fv || v == x || v == w {
				v = u
				fv = fu
			}
		}
	}
	return x, fx, false
}
