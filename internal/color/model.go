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

package color

import "fmt"

// Names of the available color models
const (
	ModelBlackbody = "blackbody"
	ModelTable     = "table"
)

// Turns the color index and apparent magnitude of a star into a displayable color.
// Implementations must be safe for concurrent use
type Model interface {
	Color(bv, magnitude float64) (RGB, error)
}

// Derives star colors from the blackbody temperature of the color index:
// temperature, Planckian locus chromaticity, clamped linear RGB, perceptual correction
type BlackbodyModel struct {
	Corrector *Corrector
}

func (m *BlackbodyModel) Color(bv, magnitude float64) (RGB, error) {
	xy, err := PlanckianLocus(Temperature(bv))
	if err != nil {
		return RGB{}, err
	}
	rgb, err := ChromaticityToRGB(xy)
	if err != nil {
		return RGB{}, err
	}
	return m.Corrector.Correct(rgb, magnitude)
}

// Looks star colors up in the color index table, then applies perceptual correction
type TableModel struct {
	Corrector *Corrector
}

func (m *TableModel) Color(bv, magnitude float64) (RGB, error) {
	rgb, err := TableColor(bv)
	if err != nil {
		return RGB{}, err
	}
	return m.Corrector.Correct(rgb, magnitude)
}

// Creates a color model by name
func NewModel(name string, cr *Corrector) (Model, error) {
	switch name {
	case ModelBlackbody, "":
		return &BlackbodyModel{Corrector: cr}, nil
	case ModelTable:
		return &TableModel{Corrector: cr}, nil
	default:
		return nil, fmt.Errorf("unknown color model '%s'", name)
	}
}
