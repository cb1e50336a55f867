// Package trace samples the camera path headlessly and reads or writes path
// data as CSV.
package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/internal/flight"
	"github.com/Faultbox/glowtrail/internal/spline"
)

// ErrNoSamples is returned when a trace would be empty.
var ErrNoSamples = errors.New("no samples")

// Sample is one camera pose on the timeline.
type Sample struct {
	Frame     int     `csv:"frame"`
	ElapsedMs float64 `csv:"elapsed_ms"`
	Param     float64 `csv:"param"`
	X         float64 `csv:"pos_x"`
	Y         float64 `csv:"pos_y"`
	Z         float64 `csv:"pos_z"`
	TargetX   float64 `csv:"target_x"`
	TargetY   float64 `csv:"target_y"`
	TargetZ   float64 `csv:"target_z"`
	// Speed is the distance from the previous sample per second, 0 for the first.
	Speed float64 `csv:"speed"`
}

// Options controls sampling.
type Options struct {
	Frames  int
	FPS     float64
	StartMs float64
}

// DefaultOptions samples one full lap at 60 frames per second for the
// default flight parameters.
func DefaultOptions() Options {
	p := flight.DefaultParams()
	return Options{
		Frames: int(p.Period() / 1000 * 60),
		FPS:    60,
	}
}

// Run samples the camera at a fixed frame rate.
func Run(c *spline.Curve, p flight.Params, opts Options) ([]Sample, error) {
	if opts.Frames <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("%w: %d frames at %v fps", ErrNoSamples, opts.Frames, opts.FPS)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	step := 1000 / opts.FPS
	samples := make([]Sample, opts.Frames)
	var prev r3.Vec
	for i := range samples {
		elapsed := opts.StartMs + float64(i)*step
		s := flight.State(c, elapsed, p)

		sample := Sample{
			Frame:     i,
			ElapsedMs: elapsed,
			Param:     s.Param,
			X:         s.Position.X,
			Y:         s.Position.Y,
			Z:         s.Position.Z,
			TargetX:   s.Target.X,
			TargetY:   s.Target.Y,
			TargetZ:   s.Target.Z,
		}
		if i > 0 {
			sample.Speed = r3.Norm(r3.Sub(s.Position, prev)) * opts.FPS
		}
		prev = s.Position
		samples[i] = sample
	}
	return samples, nil
}

// Summary describes how even the camera speed is over a trace.
type Summary struct {
	Samples   int
	MeanSpeed float64
	StdSpeed  float64
	MinSpeed  float64
	MaxSpeed  float64
}

// Variation is (max - min) / mean, 0 for a perfectly uniform speed.
func (s Summary) Variation() float64 {
	if s.MeanSpeed == 0 {
		return 0
	}
	return (s.MaxSpeed - s.MinSpeed) / s.MeanSpeed
}

// Summarize computes speed statistics, skipping the first sample which has no
// predecessor.
func Summarize(samples []Sample) Summary {
	if len(samples) < 2 {
		return Summary{Samples: len(samples)}
	}
	speeds := make([]float64, 0, len(samples)-1)
	for _, s := range samples[1:] {
		speeds = append(speeds, s.Speed)
	}
	mean, std := stat.MeanStdDev(speeds, nil)
	return Summary{
		Samples:   len(samples),
		MeanSpeed: mean,
		StdSpeed:  std,
		MinSpeed:  floats.Min(speeds),
		MaxSpeed:  floats.Max(speeds),
	}
}

// Write encodes samples as CSV with a header row.
func Write(w io.Writer, samples []Sample) error {
	if err := gocsv.Marshal(samples, w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Decoration is the CSV form of a placed decoration.
type Decoration struct {
	Index     int     `csv:"index"`
	Kind      string  `csv:"kind"`
	BaseParam float64 `csv:"base_param"`
	Param     float64 `csv:"param"`
	Hue       float64 `csv:"hue"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	Z         float64 `csv:"z"`
	RotX      float64 `csv:"rot_x"`
	RotY      float64 `csv:"rot_y"`
	RotZ      float64 `csv:"rot_z"`
}

// WriteDecorations encodes a decoration layout as CSV.
func WriteDecorations(w io.Writer, objs []decor.Object) error {
	records := make([]Decoration, len(objs))
	for i, o := range objs {
		records[i] = Decoration{
			Index:     i,
			Kind:      o.Kind.String(),
			BaseParam: o.BaseParam,
			Param:     o.Param,
			Hue:       o.Material.HSL.H,
			X:         o.Position.X,
			Y:         o.Position.Y,
			Z:         o.Position.Z,
			RotX:      o.Rotation.X,
			RotY:      o.Rotation.Y,
			RotZ:      o.Rotation.Z,
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing decorations: %w", err)
	}
	return nil
}

// Point is one control point row of a path file.
type Point struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`
}

// ReadPath decodes control points from CSV with an x,y,z header.
func ReadPath(r io.Reader) ([]r3.Vec, error) {
	var rows []Point
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading path: %w", err)
	}
	points := make([]r3.Vec, len(rows))
	for i, row := range rows {
		points[i] = r3.Vec{X: row.X, Y: row.Y, Z: row.Z}
	}
	return points, nil
}

// WritePath encodes control points as CSV.
func WritePath(w io.Writer, points []r3.Vec) error {
	rows := make([]Point, len(points))
	for i, p := range points {
		rows[i] = Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing path: %w", err)
	}
	return nil
}
