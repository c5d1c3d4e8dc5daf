package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		compare := func(a, b string) int {
			result, err := Compare(a, b)
			So(err, ShouldBeNil)
			return result
		}

		Convey("Should detect a newer version", func() {
			So(compare("1.2.3", "1.2.2"), ShouldEqual, 1)
			So(compare("2.0.0", "1.9.9"), ShouldEqual, 1)
		})

		Convey("Should detect an older version", func() {
			So(compare("0.9.1", "1.0.0"), ShouldEqual, -1)
			So(compare("1.2.3", "1.3.0"), ShouldEqual, -1)
		})

		Convey("Should treat equal versions as equal", func() {
			So(compare("v1.2.3", "1.2.3"), ShouldEqual, 0)
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("not-a-version", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
