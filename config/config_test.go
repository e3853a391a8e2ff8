package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Gateway port should default to 3000", func() {
			_ = Setup()
			So(viper.GetInt(key.GatewayPort), ShouldEqual, 3000)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("gateway.static.dir")
			So(result, ShouldEqual, "gateway_static_dir")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.GatewayPort]

		Convey("Env name carries the application prefix", func() {
			So(f.Env(), ShouldEqual, "STREAMPLAY_GATEWAY_PORT")
		})

		Convey("Pretty output mentions the key", func() {
			So(f.Pretty(), ShouldContainSubstring, key.GatewayPort)
		})
	})
}
