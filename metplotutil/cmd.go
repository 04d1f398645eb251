/*
Copyright © 2023 the metplot authors.
This file is part of metplot.

metplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

metplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with metplot.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package metplotutil holds the command-line interface of metplot.
package metplotutil

import (
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/corsmet/metplot"
	"github.com/corsmet/metplot/plot"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Options are the configuration options available to metplot.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "kind",
			usage: `
              kind selects the data source: model-output,
              precipitation-analysis, or satellite-brightness-temperature.`,
			shorthand:  "k",
			defaultVal: "model-output",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "file",
			usage: `
              file is the path of a single dataset file to read. When it is
              empty, the path is assembled from the data layout configuration
              and the --index flag.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), limitsCmd.Flags()},
		},
		{
			name: "index",
			usage: `
              index is the time index of the file to read within the
              configured data layout.`,
			shorthand:  "i",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "record",
			usage: `
              record is the record to read within a file, for sources that
              store several time steps per file.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "variable",
			usage: `
              variable overrides the primary variable of the source kind
              (for example INPRR, ACPRR, MSLP, or WIND10 for model output).`,
			shorthand:  "v",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output is the path of the image file to write.`,
			shorthand:  "o",
			defaultVal: "metplot.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "legend",
			usage: `
              legend is the path of a color-bar legend image to write next
              to the plot. No legend is written when it is empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "label",
			usage: `
              label is the text of the legend, e.g. "Précipitation (mm)".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "zoom",
			usage: `
              zoom restricts the plotted domain. Accepted values are 'all',
              'corsica', and 'mesonh' (the model simulation domain).`,
			shorthand:  "z",
			defaultVal: "all",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "overlay",
			usage: `
              overlay is the path of a GeoJSON file with coastlines or
              borders to stroke on top of the plot.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "start",
			usage: `
              start is the first time index of an animation or limit scan.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags(), limitsCmd.Flags()},
		},
		{
			name: "end",
			usage: `
              end is the last time index of an animation or limit scan.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags(), limitsCmd.Flags()},
		},
		{
			name: "step",
			usage: `
              step is the stride between successive time indices.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags(), limitsCmd.Flags()},
		},
		{
			name: "delay",
			usage: `
              delay is the animation inter-frame delay in hundredths of a
              second.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Layout.Root",
			usage: `
              Layout.Root is the root directory holding one subdirectory
              per data source.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.ModelDir",
			usage: `
              Layout.ModelDir is the subdirectory holding model output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.ModelTemplate",
			usage: `
              Layout.ModelTemplate is the model output file name template;
              [INDEX] is replaced by the zero-padded time index.`,
			defaultVal: "CORSE.1.SEG01.OUT.[INDEX].nc",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.ModelIndexWidth",
			usage: `
              Layout.ModelIndexWidth is the zero-padding width of [INDEX]
              in Layout.ModelTemplate.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.PrecipDir",
			usage: `
              Layout.PrecipDir is the subdirectory holding the
              precipitation analysis.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.PrecipTemplate",
			usage: `
              Layout.PrecipTemplate is the precipitation analysis file name
              template; [INDEX] is replaced by the zero-padded time index.`,
			defaultVal: "PRECIP_SOL_0_2208XX[INDEX].nc",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.PrecipIndexWidth",
			usage: `
              Layout.PrecipIndexWidth is the zero-padding width of [INDEX]
              in Layout.PrecipTemplate.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.SatelliteDir",
			usage: `
              Layout.SatelliteDir is the subdirectory holding satellite
              retrievals.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.SatelliteTemplate",
			usage: `
              Layout.SatelliteTemplate is the satellite file name template;
              [INDEX] is replaced by the zero-padded time index.`,
			defaultVal: "merg_20220818[INDEX]_4km-pixel.nc4",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Layout.SatelliteIndexWidth",
			usage: `
              Layout.SatelliteIndexWidth is the zero-padding width of
              [INDEX] in Layout.SatelliteTemplate.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("METPLOT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(animateCmd)
	Root.AddCommand(limitsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("metplot: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "metplot",
	Short: "Maps and animations of meteorological NetCDF datasets.",
	Long: `metplot loads Méso-NH model output, the ANTILOPE precipitation
analysis, and satellite brightness-temperature retrievals from NetCDF
files and renders them as maps and GIF animations.

Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the
format 'METPLOT_var' where 'var' is the name of the variable to be
set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of metplot.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("metplot v%s\n", metplot.Version)
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render one dataset file as a map image",
	Long: `plot loads one file of the selected source kind, normalizes it,
and writes a PNG map of the field, optionally restricted to a named
zoom domain and overlaid with coastlines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := newRequest(Cfg)
		if err != nil {
			return err
		}
		path := Cfg.GetString("file")
		if path == "" {
			if path, err = req.layout.Path(req.kind, Cfg.GetInt("index")); err != nil {
				return err
			}
		}
		field, err := req.loader().Load(path)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"file":     path,
			"variable": field.Variable,
			"units":    field.Units,
			"time":     field.Time,
		}).Info("loaded field")
		if req.zoom != nil {
			if field, err = field.Subset(req.zoom); err != nil {
				return err
			}
		}
		min, max := field.Limits()
		cmap := plot.ColorMap(min, max)
		out := Cfg.GetString("output")
		if err := plot.SavePNG(out, field, cmap, req.overlay); err != nil {
			return err
		}
		logger.WithField("output", out).Info("wrote plot")
		if legendPath := Cfg.GetString("legend"); legendPath != "" {
			if err := writeLegend(legendPath, cmap, legendLabel(Cfg, field)); err != nil {
				return err
			}
			logger.WithField("output", legendPath).Info("wrote legend")
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Render a file series as a GIF animation",
	Long: `animate loads the files of the configured series one by one and
renders them as the frames of an animated GIF. All frames share one
color scale, computed from the limits of the whole series.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := newRequest(Cfg)
		if err != nil {
			return err
		}
		series, err := req.layout.NewSeries(req.kind,
			Cfg.GetInt("start"), Cfg.GetInt("end"), Cfg.GetInt("step"))
		if err != nil {
			return err
		}
		loader := req.loader()
		min, max, err := series.Limits(loader)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"frames": len(series.Paths),
			"min":    min,
			"max":    max,
		}).Info("scanned series limits")
		cmap := plot.ColorMap(min, max)
		next := series.Fields(loader)
		if req.zoom != nil {
			next = subsetFields(next, req.zoom)
		}
		out := Cfg.GetString("output")
		w, err := os.Create(out)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := plot.AnimateGIF(w, next, cmap, req.overlay, Cfg.GetInt("delay")); err != nil {
			return err
		}
		logger.WithField("output", out).Info("wrote animation")
		return nil
	},
	DisableAutoGenTag: true,
}

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Print the value range of a field or file series",
	Long: `limits scans a single file (--file) or the configured series
(--start/--end/--step) and prints the minimum and maximum of the
normalized field, for choosing shared color scales.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := newRequest(Cfg)
		if err != nil {
			return err
		}
		var min, max float64
		if path := Cfg.GetString("file"); path != "" {
			field, err := req.loader().Load(path)
			if err != nil {
				return err
			}
			min, max = field.Limits()
		} else {
			series, err := req.layout.NewSeries(req.kind,
				Cfg.GetInt("start"), Cfg.GetInt("end"), Cfg.GetInt("step"))
			if err != nil {
				return err
			}
			if min, max, err = series.Limits(req.loader()); err != nil {
				return err
			}
		}
		fmt.Printf("min %g max %g\n", min, max)
		return nil
	},
	DisableAutoGenTag: true,
}
