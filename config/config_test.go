package config

import (
	"testing"

	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Setting the configuration up", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Every registered field gets a default", func() {
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("The player default is mpv", func() {
			So(viper.GetString(key.Player), ShouldEqual, "mpv")
		})
	})
}

func TestEnvKeyReplacer(t *testing.T) {
	Convey("Dotted keys map to underscored env names", t, func() {
		So(EnvKeyReplacer.Replace(key.YouTubeMaxRes), ShouldEqual, "youtube_max_res")
	})
}
