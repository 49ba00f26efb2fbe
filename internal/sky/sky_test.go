// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sky

import (
	"math"
	"testing"
)

func TestProjectOrigin(t *testing.T) {
	p := NewProjector(DefaultScale)
	pt := p.Project(Sexagesimal{0, 0, 0}, Sexagesimal{0, 0, 0})
	if pt.X != 0 || pt.Y != 90*DefaultScale {
		t.Errorf("Project(0h, 0d)=%v; want (0, %f)", pt, 90*DefaultScale)
	}
}

func TestProjectSouthPole(t *testing.T) {
	p := NewProjector(DefaultScale)
	pt := p.Project(Sexagesimal{12, 0, 0}, Sexagesimal{-90, 0, 0})
	if pt.X != 180*DefaultScale || pt.Y != 0 {
		t.Errorf("Project(12h, -90d)=%v; want (%f, 0)", pt, 180*DefaultScale)
	}
}

func TestProjectSexagesimal(t *testing.T) {
	tests := []struct {
		ra, dec Sexagesimal
		x, y    float64
	}{
		{Sexagesimal{6, 45, 8.9}, Sexagesimal{-16, 42, 58}, 101.287083333, -16.716111111 + 90},
		{Sexagesimal{0, 0, 36}, Sexagesimal{math.Copysign(0, -1), 30, 0}, 0.15, -0.5 + 90},
		{Sexagesimal{23, 59, 59}, Sexagesimal{89, 15, 50.8}, 359.995833333, 89.264111111 + 90},
	}
	p := NewProjector(1)
	for _, test := range tests {
		pt := p.Project(test.ra, test.dec)
		if math.Abs(pt.X-test.x) > 1e-6 || math.Abs(pt.Y-test.y) > 1e-6 {
			t.Errorf("Project(%v, %v)=%v; want (%f, %f)", test.ra, test.dec, pt, test.x, test.y)
		}
	}
}

func TestProjectRange(t *testing.T) {
	p := NewProjector(10)
	w, h := p.Size()
	if w != 3600 || h != 1800 {
		t.Errorf("Size()=%d,%d; want 3600,1800", w, h)
	}
	for hh := 0.0; hh < 24; hh += 0.5 {
		for d := -90.0; d < 90; d += 7.5 {
			pt := p.Project(Sexagesimal{hh, 0, 0}, Sexagesimal{d, 0, 0})
			if pt.X < 0 || pt.X >= float64(w) || pt.Y < 0 || pt.Y >= float64(h) {
				t.Errorf("Project(%gh, %gd)=%v outside %dx%d", hh, d, pt, w, h)
			}
			if dec := p.DecFromY(pt.Y); math.Abs(dec-d) > 1e-9 {
				t.Errorf("DecFromY(%f)=%f; want %f", pt.Y, dec, d)
			}
		}
	}
}

func TestSexagesimalDecimalSign(t *testing.T) {
	tests := []struct {
		s    Sexagesimal
		want float64
	}{
		{Sexagesimal{-5, 30, 0}, -5.5},
		{Sexagesimal{5, 30, 0}, 5.5},
		{Sexagesimal{math.Copysign(0, -1), 30, 0}, -0.5},
		{Sexagesimal{0, 30, 0}, 0.5},
		{Sexagesimal{-16, 42, 58}, -16 - 42.0/60 - 58.0/3600},
	}
	for _, test := range tests {
		if got := test.s.Decimal(); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%v.Decimal()=%v; want %v", test.s, got, test.want)
		}
	}
}

func TestProjectWrapsRightAscension(t *testing.T) {
	p := NewProjector(40)
	w, _ := p.Size()
	tests := []struct {
		ra Sexagesimal
		x  float64
	}{
		{Sexagesimal{23, 59, 60}, 0},
		{Sexagesimal{24, 0, 0}, 0},
		{Sexagesimal{25, 0, 0}, 15 * 40},
		{Sexagesimal{-1, 0, 0}, 345 * 40},
		{Sexagesimal{math.Copysign(0, -1), 0, 0}, 0},
		{Sexagesimal{48, 30, 0}, 7.5 * 40},
	}
	for _, test := range tests {
		pt := p.Project(test.ra, Sexagesimal{})
		if pt.X < 0 || pt.X >= float64(w) {
			t.Errorf("Project(%v).X=%v outside [0,%d)", test.ra, pt.X, w)
		}
		if math.Abs(pt.X-test.x) > 1e-6 {
			t.Errorf("Project(%v).X=%v; want %v", test.ra, pt.X, test.x)
		}
	}
}

func TestVerticalRadiusMonotonic(t *testing.T) {
	m := NewRadiusModel()
	prev := math.Inf(1)
	for mag := -1.5; mag <= 12; mag += 0.25 {
		rv, _ := m.Radii(mag, 30)
		if !(rv < prev) {
			t.Errorf("rv(%g)=%f not smaller than rv of brighter star %f", mag, rv, prev)
		}
		prev = rv
	}
	if rv := m.Vertical(DefaultReferenceMagnitude); rv != DefaultBaseRadius {
		t.Errorf("rv at reference magnitude=%f; want %f", rv, DefaultBaseRadius)
	}
}

func TestHorizontalRadius(t *testing.T) {
	m := NewRadiusModel()
	for dec := -89.9; dec < 90; dec += 0.1 {
		rv, rh := m.Radii(3, dec)
		if rh < rv {
			t.Errorf("dec=%f: rh=%f < rv=%f", dec, rh, rv)
		}
		if rh > rv*m.PoleAspectLimit {
			t.Errorf("dec=%f: rh=%f exceeds cap %f", dec, rh, rv*m.PoleAspectLimit)
		}
	}

	rv, rh := m.Radii(3, 60)
	if math.Abs(rh-2*rv) > 1e-9 {
		t.Errorf("at 60 degrees rh=%f; want %f", rh, 2*rv)
	}
	rv, rh = m.Radii(3, 0)
	if rh != rv {
		t.Errorf("at the equator rh=%f; want rv=%f", rh, rv)
	}
}

func TestHorizontalRadiusAtPoles(t *testing.T) {
	m := NewRadiusModel()
	for _, dec := range []float64{-90, 90, 89.99999, 90.5} {
		rv, rh := m.Radii(1, dec)
		if math.IsInf(rh, 0) || math.IsNaN(rh) {
			t.Errorf("dec=%f: rh=%f not finite", dec, rh)
		}
		if rh != rv*m.PoleAspectLimit {
			t.Errorf("dec=%f: rh=%f; want cap %f", dec, rh, rv*m.PoleAspectLimit)
		}
	}
}
