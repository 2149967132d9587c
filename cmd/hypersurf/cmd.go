/*
Copyright © 2026 the hypersurf authors.
This file is part of hypersurf.

hypersurf is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hypersurf is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hypersurf.  If not, see <http://www.gnu.org/licenses/>.
*/


package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gonum.org/v1/plot/vg"

	"github.com/spatialmodel/hypersurf/config"
	"github.com/spatialmodel/hypersurf/export"
	"github.com/spatialmodel/hypersurf/plot"
	"github.com/spatialmodel/hypersurf/surface"
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hypersurf",
	Short: "Rotate the surfaces of complex functions in four or more dimensions.",
	Long: `hypersurf samples a complex function on a grid of the complex plane,
treats each sample as a point in four or more dimensions, rotates the
points through a sequence of angles and projects them into three
dimensions. Configuration is read from a TOML file. Any option given
as a flag can also be set with an environment variable such as
HYPERSURF_OUTPUT.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log-level"))
	},
	SilenceUsage: true,
}

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Compute the animation frames and write them to the output directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, err = Frames(context.Background(), cfg, logrus.StandardLogger())
		return err
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw one frame from each configured camera view.",
	Long: `render draws one frame of the animation from every combination of
the configured camera elevations and azimuths. The frame is read from
the frames file in the output directory, which is computed first if it
does not exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		files, err := Render(context.Background(), cfg, logrus.StandardLogger())
		if err != nil {
			return err
		}
		if viper.GetBool("open") && len(files) > 0 {
			return open.Run(filepath.Join(cfg.Output.Dir, files[0]))
		}
		return nil
	},
}

func init() {
	viper.SetEnvPrefix("HYPERSURF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	Root.PersistentFlags().String("config", "hypersurf.toml", "path to the configuration file")
	Root.PersistentFlags().String("output", "", "output directory; overrides the configuration file")
	Root.PersistentFlags().String("log-level", "info", "logging level: debug, info, warn or error")
	renderCmd.Flags().Bool("open", false, "open the first rendered image")

	bindFlags(Root.PersistentFlags(), "config", "output", "log-level")
	bindFlags(renderCmd.Flags(), "open")

	Root.AddCommand(framesCmd, renderCmd)
}

func bindFlags(fs *pflag.FlagSet, names ...string) {
	for _, n := range names {
		if err := viper.BindPFlag(n, fs.Lookup(n)); err != nil {
			panic(err)
		}
	}
}

func setupLogging(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(l)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// loadConfig reads the configuration file named by the config option
// and applies the output directory override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if dir := viper.GetString("output"); dir != "" {
		cfg.Output.Dir = dir
	}
	return cfg, nil
}

// openBucket opens the output directory as a blob bucket, creating the
// directory if necessary.
func openBucket(dir string) (*blob.Bucket, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(dir, nil)
}

// Frames computes the projected animation frames described by cfg and
// writes them to the output directory as JSON, and also as XLSX if an
// XLSX file name is configured.
func Frames(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*export.Document, error) {
	f, err := cfg.Fn()
	if err != nil {
		return nil, err
	}
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	o, err := cfg.SurfaceOptions()
	if err != nil {
		return nil, err
	}
	base, err := surface.Generate(f, g, o)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"function": cfg.Function.Name,
		"points":   base.Len(),
		"dim":      base.Dim(),
	}).Info("generated surface")

	sweep, err := cfg.AnimationSweep(log)
	if err != nil {
		return nil, err
	}
	p, err := cfg.ProjectionOp()
	if err != nil {
		return nil, err
	}
	frames, err := sweep.Project(ctx, base, p)
	if err != nil {
		return nil, err
	}
	doc, err := export.Projected(g.Ranges(), frames)
	if err != nil {
		return nil, err
	}

	bucket, err := openBucket(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()
	if err := writeBlob(ctx, bucket, cfg.Output.Frames, func(w *blob.Writer) error {
		return export.WriteJSON(w, doc)
	}); err != nil {
		return nil, err
	}
	log.WithField("file", cfg.Output.Frames).Info("wrote frames")
	if cfg.Output.XLSX != "" {
		if err := writeBlob(ctx, bucket, cfg.Output.XLSX, func(w *blob.Writer) error {
			return export.WriteXLSX(w, doc)
		}); err != nil {
			return nil, err
		}
		log.WithField("file", cfg.Output.XLSX).Info("wrote frames")
	}
	return doc, nil
}

// Render draws frame cfg.Render.Frame from every configured camera and
// returns the names of the image files written to the output directory.
func Render(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) ([]string, error) {
	bucket, err := openBucket(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	ok, err := bucket.Exists(ctx, cfg.Output.Frames)
	if err != nil {
		return nil, err
	}
	var doc *export.Document
	if ok {
		doc, err = readFrames(ctx, bucket, cfg.Output.Frames)
	} else {
		log.WithField("file", cfg.Output.Frames).Info("frames not found; computing them")
		doc, err = Frames(ctx, cfg, log)
	}
	if err != nil {
		return nil, err
	}
	p, err := doc.Projected(cfg.Render.Frame)
	if err != nil {
		return nil, err
	}
	var values []float64
	if cfg.Render.Color != "" {
		if values, err = plot.Values(p, cfg.Render.Color); err != nil {
			return nil, err
		}
	}
	o := plot.Options{
		Width:  vg.Length(cfg.Render.Width) * vg.Inch,
		Height: vg.Length(cfg.Render.Height) * vg.Inch,
		Title:  cfg.Output.Label,
	}

	var files []string
	for _, cam := range cfg.Cameras() {
		name := fmt.Sprintf("%s_%g_%g.png", cfg.Output.Label, cam.Elevation, cam.Azimuth)
		if err := writeBlob(ctx, bucket, name, func(w *blob.Writer) error {
			return plot.Render(w, p, values, cam, o)
		}); err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"file":      name,
			"elevation": cam.Elevation,
			"azimuth":   cam.Azimuth,
		}).Debug("rendered view")
		files = append(files, name)
	}
	log.WithField("views", len(files)).Info("rendered frame")
	return files, nil
}

func readFrames(ctx context.Context, bucket *blob.Bucket, key string) (*export.Document, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return export.ReadJSON(r)
}

// writeBlob stores what write produces under key. If write fails,
// nothing is stored.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, write func(*blob.Writer) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		// Closing after cancel discards the partial object.
		cancel()
		w.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return w.Close()
}
