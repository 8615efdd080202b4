package imghelper

import (
	"errors"
	"testing"
)

func TestSampleFactor(t *testing.T) {
	testCase := []struct {
		orig, target Dimensions
		budget       float64
		want         int
	}{
		{Dimensions{4000, 3000}, Dimensions{1280, 960}, 2, 3},
		{Dimensions{400, 300}, Dimensions{1280, 960}, 2, 1},
		{Dimensions{1600, 1200}, Dimensions{1000, 1000}, 2, 1},
		{Dimensions{80, 1000}, Dimensions{200, 900}, 2, 1},
		{Dimensions{1000, 1000}, Dimensions{100, 900}, 2, 3},
		{Dimensions{4000, 3000}, Dimensions{100, 100}, 2, 30},
		{Dimensions{4000, 3000}, Dimensions{1280, 960}, 0, 3},
		{Dimensions{1000, 1000}, Dimensions{100, 900}, 0.5, 5},
		{Dimensions{1000, 1000}, Dimensions{100, 900}, 20, 1},
	}
	for _, tc := range testCase {
		got, err := SampleFactor(tc.orig, tc.target, tc.budget)
		if err != nil {
			t.Errorf("SampleFactor(%s, %s, %g): %v", tc.orig, tc.target, tc.budget, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SampleFactor(%s, %s, %g) = %d; want %d", tc.orig, tc.target, tc.budget, got, tc.want)
		}
	}
}

func TestSampleFactorInvalid(t *testing.T) {
	for _, tc := range [][2]Dimensions{
		{{0, 100}, {10, 10}},
		{{100, -1}, {10, 10}},
		{{100, 100}, {0, 10}},
		{{100, 100}, {10, 0}},
	} {
		if _, err := SampleFactor(tc[0], tc[1], DefaultPixelBudget); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("SampleFactor(%s, %s) expected ErrInvalidDimension; got %v", tc[0], tc[1], err)
		}
	}
}

func TestSampleFactorProperties(t *testing.T) {
	sizes := []int{1, 5, 17, 100, 333, 1024, 4000}
	for _, ow := range sizes {
		for _, oh := range sizes {
			for _, tw := range sizes {
				for _, th := range sizes {
					orig, target := Dimensions{ow, oh}, Dimensions{tw, th}
					factor, err := SampleFactor(orig, target, DefaultPixelBudget)
					if err != nil {
						t.Fatal(err)
					}
					if factor < 1 {
						t.Fatalf("SampleFactor(%s, %s) = %d", orig, target, factor)
					}
					area, targetArea := float64(ow*oh), float64(tw*th)
					if area <= 2*targetArea && factor != 1 {
						t.Fatalf("SampleFactor(%s, %s) = %d; want 1 within the budget", orig, target, factor)
					}
					if area/float64(factor*factor) > 2*targetArea {
						t.Fatalf("SampleFactor(%s, %s) = %d exceeds the budget", orig, target, factor)
					}
				}
			}
		}
	}
}
