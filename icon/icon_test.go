package icon

import (
	"testing"

	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Rendering a registered icon", t, func() {
		Convey("Every variant produces output", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(Mic), ShouldNotBeEmpty)
				})
			}
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Mic), ShouldBeEmpty)
		})
	})
}
