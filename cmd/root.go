// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var cfgFile string
var verbose bool

// RootCmd is the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dhtwx",
	Short: "DHT22 file driver for weewx",
	Long: `dhtwx is a weather station driver for DHT22 and DHT22/BMP280 sensors.

It polls the name=value file written by the sensor sampling script, turns
every poll into a metric loop packet and hands it on to the console, an
MQTT broker or a Prometheus scrape endpoint.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		jww.ERROR.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is dhtwx.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	viper.BindPFlags(RootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName("dhtwx") // name of config file (without extension)
	viper.AddConfigPath("/etc/dhtwx/")
	viper.AddConfigPath("$HOME/.dhtwx/")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("dhtwx")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		jww.DEBUG.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// notepad is the logger handed to the driver and its sinks.
func notepad(out io.Writer) *jww.Notepad {
	threshold := jww.LevelInfo
	if viper.GetBool("verbose") {
		threshold = jww.LevelTrace
	}
	return jww.NewNotepad(threshold, jww.LevelFatal, out, io.Discard, "dhtwx", log.Ldate|log.Ltime)
}
