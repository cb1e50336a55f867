// Package postfx implements the bloom and tone mapping passes applied to the
// HDR scene image.
package postfx

import (
	"fmt"
	gomath "math"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glowtrail/internal/engine/framebuffer"
	"github.com/Faultbox/glowtrail/internal/engine/shader"
	"github.com/Faultbox/glowtrail/internal/engine/shaders"
	"github.com/Faultbox/glowtrail/internal/logger"
)

// Config holds bloom and tone mapping settings.
type Config struct {
	Threshold   float32 // Luminance where bloom starts
	SmoothWidth float32 // Soft knee above the threshold
	Strength    float32
	Radius      float32 // 0 favors the sharp mips, 1 the wide ones
	Mips        int
	Exposure    float32
}

// DefaultConfig returns the stock bloom settings.
func DefaultConfig() Config {
	return Config{
		Threshold:   0.05,
		SmoothWidth: 0.01,
		Strength:    1.8,
		Radius:      0.5,
		Mips:        5,
		Exposure:    1.0,
	}
}

// Factors returns the weight of each mip in the composite. Base weights fall
// linearly from 1 for the sharpest mip; radius blends each toward its mirror
// 1.2 - w, so radius 0.5 flattens them all to 0.6.
func Factors(mips int, radius float32) []float32 {
	out := make([]float32, mips)
	for i := range out {
		base := 1 - float32(i)/float32(mips)
		out[i] = base + (1.2-2*base)*radius
	}
	return out
}

// KernelRadius is the blur radius in texels for mip level i.
func KernelRadius(i int) int {
	return 3 + 2*i
}

// GaussianWeights returns the one-sided kernel for a separable blur, center
// first. The full two-sided kernel sums to 1.
func GaussianWeights(radius int, sigma float64) []float32 {
	if radius < 1 {
		return nil
	}
	raw := make([]float64, radius)
	sum := 0.0
	for i := range raw {
		raw[i] = gomath.Exp(-0.5*float64(i*i)/(sigma*sigma)) / sigma
		if i == 0 {
			sum += raw[i]
		} else {
			sum += 2 * raw[i]
		}
	}
	out := make([]float32, radius)
	for i, w := range raw {
		out[i] = float32(w / sum)
	}
	return out
}

// MipSizes halves width and height once per level, starting at half size.
func MipSizes(width, height int32, mips int) [][2]int32 {
	out := make([][2]int32, mips)
	w, h := width, height
	for i := range out {
		w, h = max((w+1)/2, 1), max((h+1)/2, 1)
		out[i] = [2]int32{w, h}
	}
	return out
}

// Bloom is the GPU side of the post-processing chain.
type Bloom struct {
	cfg Config

	bright    *shader.Program
	blur      *shader.Program
	composite *shader.Program

	mips  []*framebuffer.Framebuffer
	temps []*framebuffer.Framebuffer

	weights [][]float32
	factors []float32

	// Core profile refuses to draw without a VAO bound, even with no attributes.
	vao uint32
}

// NewBloom compiles the post-processing programs and allocates mip targets.
func NewBloom(cfg Config, width, height int32) (*Bloom, error) {
	if cfg.Mips < 1 {
		return nil, fmt.Errorf("bloom needs at least one mip, got %d", cfg.Mips)
	}

	b := &Bloom{
		cfg:     cfg,
		factors: Factors(cfg.Mips, cfg.Radius),
	}
	for i := range cfg.Mips {
		r := KernelRadius(i)
		b.weights = append(b.weights, GaussianWeights(r, float64(r)))
	}

	var err error
	if b.bright, err = shader.New("bright pass", shaders.FullscreenVertexShader, shaders.BrightPassFragmentShader); err != nil {
		return nil, err
	}
	blurSrc := shader.Inject(shaders.BlurFragmentShader, map[string]string{
		"MAX_RADIUS": strconv.Itoa(KernelRadius(cfg.Mips - 1)),
	})
	if b.blur, err = shader.New("blur", shaders.FullscreenVertexShader, blurSrc); err != nil {
		b.Close()
		return nil, err
	}
	compositeSrc := shader.Inject(shaders.CompositeFragmentShader, map[string]string{
		"MIP_COUNT": strconv.Itoa(cfg.Mips),
	})
	if b.composite, err = shader.New("composite", shaders.FullscreenVertexShader, compositeSrc); err != nil {
		b.Close()
		return nil, err
	}

	for _, size := range MipSizes(width, height, cfg.Mips) {
		mip, err := framebuffer.New(size[0], size[1], framebuffer.Options{HDR: true})
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("bloom mip: %w", err)
		}
		b.mips = append(b.mips, mip)

		tmp, err := framebuffer.New(size[0], size[1], framebuffer.Options{HDR: true})
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("bloom mip: %w", err)
		}
		b.temps = append(b.temps, tmp)
	}

	gl.GenVertexArrays(1, &b.vao)

	logger.Debug("bloom ready",
		zap.Int("mips", cfg.Mips),
		zap.Float32("threshold", cfg.Threshold),
		zap.Float32("strength", cfg.Strength),
		zap.Float32("radius", cfg.Radius),
	)
	return b, nil
}

// Resize reallocates the mip chain for a new scene size.
func (b *Bloom) Resize(width, height int32) {
	for i, size := range MipSizes(width, height, len(b.mips)) {
		b.mips[i].Resize(size[0], size[1])
		b.temps[i].Resize(size[0], size[1])
	}
}

// Apply blooms sceneTex and writes the tone mapped result into the framebuffer
// dst (0 for the window) with the given viewport size.
func (b *Bloom) Apply(sceneTex uint32, dst uint32, width, height int32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(b.vao)

	// Bright pass, downsampled straight into the first mip
	b.mips[0].Bind()
	b.bright.Use()
	bindTexture(0, sceneTex)
	b.bright.SetInt("uSource", 0)
	b.bright.SetFloat("uThreshold", b.cfg.Threshold)
	b.bright.SetFloat("uSmoothWidth", b.cfg.SmoothWidth)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	b.blur.Use()
	b.blur.SetInt("uSource", 0)
	for i := range b.mips {
		src := b.mips[max(i-1, 0)]
		w, h := b.mips[i].Size()
		weights := b.weights[i]
		gl.Uniform1fv(b.blur.Uniform("uWeights[0]"), int32(len(weights)), &weights[0])
		b.blur.SetInt("uRadius", int32(len(weights)))

		b.temps[i].Bind()
		bindTexture(0, src.ColorTexture())
		b.blur.SetVec2("uDirection", 1/float32(w), 0)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)

		b.mips[i].Bind()
		bindTexture(0, b.temps[i].ColorTexture())
		b.blur.SetVec2("uDirection", 0, 1/float32(h))
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, dst)
	gl.Viewport(0, 0, width, height)
	b.composite.Use()
	bindTexture(0, sceneTex)
	b.composite.SetInt("uScene", 0)
	for i, mip := range b.mips {
		bindTexture(uint32(i+1), mip.ColorTexture())
		b.composite.SetInt("uBloom["+strconv.Itoa(i)+"]", int32(i+1))
	}
	gl.Uniform1fv(b.composite.Uniform("uFactors[0]"), int32(len(b.factors)), &b.factors[0])
	b.composite.SetFloat("uStrength", b.cfg.Strength)
	b.composite.SetFloat("uExposure", b.cfg.Exposure)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Enable(gl.DEPTH_TEST)
}

func bindTexture(unit, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// Close releases programs and targets.
func (b *Bloom) Close() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, fb := range b.temps {
		fb.Destroy()
	}
	for _, fb := range b.mips {
		fb.Destroy()
	}
	b.temps, b.mips = nil, nil
	for _, p := range []*shader.Program{b.composite, b.blur, b.bright} {
		if p != nil {
			p.Delete()
		}
	}
}
