package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBitReverse(t *testing.T) {
	Convey("Given bit reversal", t, func() {
		Convey("ReverseBits should mirror the lower n bits", func() {
			So(ReverseBits(6, 3), ShouldEqual, 3)
			So(ReverseBits(1, 4), ShouldEqual, 8)
			So(ReverseBits(0, 5), ShouldEqual, 0)
			So(ReverseBits(1, 0), ShouldEqual, 0)
		})

		Convey("BitReverse should permute a vector and be its own inverse", func() {
			states := make([]C64, 8)
			for i := range states {
				states[i] = NewC64(float64(i), 0)
			}

			BitReverse(states)
			got := make([]float64, len(states))
			for i, amp := range states {
				got[i] = amp.Real()
			}
			So(got, ShouldResemble, []float64{0, 4, 2, 6, 1, 5, 3, 7})

			BitReverse(states)
			for i, amp := range states {
				So(amp.Real(), ShouldEqual, float64(i))
			}
		})
	})
}
