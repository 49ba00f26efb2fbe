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

package qsort

// Sorts a slice of float64 in ascending order.
// Slice must not contain IEEE NaN
func QSort(a []float64) {
	if len(a) > 1 {
		index := QPartition(a)
		QSort(a[:index+1])
		QSort(a[index+1:])
	}
}

// Partitions a slice of float64 around the middle pivot element, and returns the pivot index.
// Values less than the pivot are moved left of the pivot, those greater are moved right.
// Slice must not contain IEEE NaN
func QPartition(a []float64) int {
	pivot := a[(len(a)-1)>>1]
	l, r := -1, len(a)
	for {
		for {
			l++
			if a[l] >= pivot {
				break
			}
		}
		for {
			r--
			if a[r] <= pivot {
				break
			}
		}
		if l >= r {
			return r
		}
		a[l], a[r] = a[r], a[l]
	}
}

// Selects the kth lowest element from a slice of float64, with k starting at 1.
// Partially reorders the slice. Slice must not contain IEEE NaN
func QSelect(a []float64, k int) float64 {
	left, right := 0, len(a)-1
	for left < right {
		index := left + QPartition(a[left:right+1])
		offset := index - left + 1
		if k <= offset {
			right = index
		} else {
			left = index + 1
			k = k - offset
		}
	}
	return a[left]
}

// Selects the median of a slice of float64, averaging the two middle elements for even lengths.
// Partially reorders the slice. Slice must not contain IEEE NaN
func QSelectMedian(a []float64) float64 {
	n := len(a)
	if n&1 != 0 {
		return QSelect(a, (n>>1)+1)
	}
	lo := QSelect(a, n>>1)
	hi := QSelect(a, (n>>1)+1)
	return 0.5 * (lo + hi)
}

// Selects the first quartile of a slice of float64. Partially reorders the slice.
// Slice must not contain IEEE NaN
func QSelectFirstQuartile(a []float64) float64 {
	return QSelect(a, (len(a)>>2)+1)
}
