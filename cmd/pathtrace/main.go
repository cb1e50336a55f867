// pathtrace samples the fly-through camera path without a window and writes
// the results as CSV.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/internal/flight"
	"github.com/Faultbox/glowtrail/internal/logger"
	"github.com/Faultbox/glowtrail/internal/spline"
	"github.com/Faultbox/glowtrail/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "camera":
		err = cmdCamera(args)
	case "decorations", "decor":
		err = cmdDecorations(args)
	case "path":
		err = cmdPath(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pathtrace - headless camera path sampler

Usage:
  pathtrace <command> [options]

Commands:
  camera       Sample the camera pose every frame and report speed evenness
  decorations  Write the decoration layout for a seed
  path         Write the control points of the built-in path

Common options:
  -path <file.csv>   Control points (x,y,z header) instead of the built-in path
  -o <file.csv>      Output file (default stdout)
  -log <level>       Log level on stderr (default info)

Examples:
  pathtrace camera -frames 600 -fps 30 -o trace.csv
  pathtrace decorations -seed 7 -count 80
  pathtrace path > loop.csv`)
}

type common struct {
	path  string
	out   string
	level string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.path, "path", "", "CSV file of x,y,z control points")
	fs.StringVar(&c.out, "o", "", "Output CSV file (default stdout)")
	fs.StringVar(&c.level, "log", "info", "Log level")
}

// setup starts stderr logging so stdout stays pure CSV.
func (c *common) setup() error {
	return logger.Setup(logger.Options{Level: c.level, Console: os.Stderr})
}

func (c *common) curve() (*spline.Curve, error) {
	points := spline.Reference()
	if c.path != "" {
		f, err := os.Open(c.path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if points, err = trace.ReadPath(f); err != nil {
			return nil, err
		}
	}
	return spline.Build(points)
}

// output runs write against the chosen destination.
func (c *common) output(write func(io.Writer) error) error {
	if c.out == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(c.out)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	logger.Info("wrote", zap.String("file", c.out))
	return f.Close()
}

func cmdCamera(args []string) error {
	var c common
	defaults := flight.DefaultParams()
	opts := trace.DefaultOptions()
	params := defaults

	fs := flag.NewFlagSet("camera", flag.ExitOnError)
	c.register(fs)
	fs.IntVar(&opts.Frames, "frames", opts.Frames, "Number of frames to sample")
	fs.Float64Var(&opts.FPS, "fps", opts.FPS, "Sampling frame rate")
	fs.Float64Var(&opts.StartMs, "start", 0, "Elapsed time of the first frame in ms")
	fs.Float64Var(&params.SpeedFactor, "speed", defaults.SpeedFactor, "Camera speed factor")
	fs.Float64Var(&params.LoopDurationMs, "loop", defaults.LoopDurationMs, "Loop duration in ms")
	fs.Float64Var(&params.LookAhead, "ahead", defaults.LookAhead, "Look-ahead parameter offset")
	fs.Parse(args)

	if err := c.setup(); err != nil {
		return err
	}
	curve, err := c.curve()
	if err != nil {
		return err
	}

	samples, err := trace.Run(curve, params, opts)
	if err != nil {
		return err
	}

	sum := trace.Summarize(samples)
	logger.Info("camera trace",
		zap.Int("samples", sum.Samples),
		zap.Float64("path_length", curve.Length()),
		zap.Float64("lap_seconds", params.Period()/1000),
		zap.Float64("mean_speed", sum.MeanSpeed),
		zap.Float64("std_speed", sum.StdSpeed),
		zap.Float64("min_speed", sum.MinSpeed),
		zap.Float64("max_speed", sum.MaxSpeed),
		zap.Float64("variation", sum.Variation()),
	)

	return c.output(func(w io.Writer) error { return trace.Write(w, samples) })
}

func cmdDecorations(args []string) error {
	var c common
	var count int
	var seed int64

	fs := flag.NewFlagSet("decorations", flag.ExitOnError)
	c.register(fs)
	fs.IntVar(&count, "count", 40, "Number of icosahedra")
	fs.Int64Var(&seed, "seed", 1, "Layout seed")
	fs.Parse(args)

	if err := c.setup(); err != nil {
		return err
	}
	curve, err := c.curve()
	if err != nil {
		return err
	}

	objs, err := decor.PlaceDecorations(curve, count, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	logger.Info("placed decorations", zap.Int("count", len(objs)), zap.Int64("seed", seed))

	return c.output(func(w io.Writer) error { return trace.WriteDecorations(w, objs) })
}

func cmdPath(args []string) error {
	var c common
	var divisions int

	fs := flag.NewFlagSet("path", flag.ExitOnError)
	c.register(fs)
	fs.IntVar(&divisions, "divisions", 0, "Resample the curve into this many control points instead of copying them")
	fs.Parse(args)

	if err := c.setup(); err != nil {
		return err
	}
	curve, err := c.curve()
	if err != nil {
		return err
	}

	var points []r3.Vec
	if divisions > 0 {
		// Drop the closing sample, it repeats the first
		points = curve.Points(divisions)[:divisions]
	} else {
		points = curve.ControlPoints()
	}
	logger.Debug("path", zap.Int("points", len(points)), zap.Float64("length", curve.Length()))

	return c.output(func(w io.Writer) error { return trace.WritePath(w, points) })
}
