// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command clockwork-demo renders a few frames of a small scene offscreen and
// writes them as PNG files.
//
// Usage:
//
//	clockwork-demo [-config demo.toml] [-width 640] [-height 480] [-frames 8]
//	               [-output frame_%03d.png] [-texture sprite.png] [-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/clockwork"
	"github.com/gogpu/clockwork/atlas"
	"github.com/gogpu/clockwork/camera"
	"github.com/gogpu/clockwork/hotreload"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		width      = flag.Uint("width", 0, "image width (overrides config)")
		height     = flag.Uint("height", 0, "image height (overrides config)")
		frames     = flag.Int("frames", 0, "number of frames (overrides config)")
		output     = flag.String("output", "", "output file pattern (overrides config)")
		texture    = flag.String("texture", "", "sprite strip image (overrides config)")
		watch      = flag.Bool("watch", false, "reload the texture when it changes")
		spirv      = flag.Bool("spirv", false, "compile the shader to SPIR-V")
		level      = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "clockwork",
	})

	cfg, err := loadDemoConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = uint32(*width) //nolint:gosec // flag values are small
		case "height":
			cfg.Height = uint32(*height) //nolint:gosec // flag values are small
		case "frames":
			cfg.Frames = *frames
		case "output":
			cfg.Output = *output
		case "texture":
			cfg.Texture = *texture
		case "watch":
			cfg.Watch = *watch
		case "spirv":
			cfg.CompileSPIRV = *spirv
		case "log-level":
			cfg.LogLevel = *level
		}
	})
	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.LogLevel)
	}
	logger.SetLevel(lvl)
	clockwork.SetLogger(slog.New(logger))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("demo failed", "err", err)
	}
}

func run(cfg demoConfig, logger *log.Logger) error {
	surface, err := clockwork.NewOffscreenSurface(gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return err
	}

	rcfg := clockwork.DefaultConfig()
	rcfg.Label = "demo"
	rcfg.CompileSPIRV = cfg.CompileSPIRV
	rcfg.ClearColor = gputypes.Color{R: cfg.ClearColor[0], G: cfg.ClearColor[1], B: cfg.ClearColor[2], A: cfg.ClearColor[3]}

	rc, err := clockwork.New(surface, cfg.Width, cfg.Height, rcfg)
	if err != nil {
		return err
	}
	defer rc.Close()

	quad, err := rc.LoadMesh(clockwork.QuadMeshData())
	if err != nil {
		return err
	}
	cube, err := rc.LoadMesh(clockwork.CubeMeshData())
	if err != nil {
		return err
	}

	var watcher *hotreload.Watcher
	sprite, err := loadSprite(rc, cfg)
	if err != nil {
		return err
	}
	if cfg.Watch && cfg.Texture != "" {
		watcher, err = hotreload.New(rc)
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Track(cfg.Texture, sprite.Texture); err != nil {
			return err
		}
	}

	atl := atlas.New()
	atl.AddTaggedSprite(sprite, "strip", "walk")
	walk := atlas.LazyTagged("strip", "walk")

	cam := camera.New(mgl32.Translate3D(0, 0, 3), camera.DefaultPerspective())
	cam.SetAspect(cfg.Width, cfg.Height)

	ctx := context.Background()
	for frame := 0; frame < cfg.Frames; frame++ {
		if watcher != nil {
			if _, err := watcher.Apply(ctx); err != nil {
				logger.Warn("texture reload", "err", err)
			}
		}

		angle := float32(frame) * (2 * math.Pi / float32(cfg.Frames))
		ops := []clockwork.RenderOperation{
			clockwork.ColoredMesh(
				mgl32.Translate3D(0.9, 0, -1).Mul4(mgl32.HomogRotate3D(angle, mgl32.Vec3{1, 1, 0}.Normalize())).Mul4(mgl32.Scale3D(0.8, 0.8, 0.8)),
				cube, mgl32.Vec4{0.9, 0.4, 0.2, 1}),
			atl.SpriteLazily(walk).Operation(mgl32.Translate3D(-0.9, 0, 0), quad, frame, clockwork.White),
		}

		if err := rc.Render(cam.ViewProjection(), ops); err != nil {
			return err
		}

		name := fmt.Sprintf(cfg.Output, frame)
		if err := writePNG(name, surface.Image()); err != nil {
			return err
		}
		st := rc.Stats()
		logger.Info("frame written", "file", name, "draws", st.Draws, "indices", st.Indices, "bind_groups", st.BindGroups)
	}
	return nil
}

// loadSprite loads cfg.Texture as a strip of four frames, or a generated
// strip when no texture is configured.
func loadSprite(rc *clockwork.RenderContext, cfg demoConfig) (atlas.Sprite, error) {
	var (
		id   clockwork.TextureID
		size image.Point
		err  error
	)
	if cfg.Texture != "" {
		data, rerr := os.ReadFile(cfg.Texture)
		if rerr != nil {
			return atlas.Sprite{}, rerr
		}
		id, err = rc.LoadTexture(data)
		if err != nil {
			return atlas.Sprite{}, err
		}
		tex, _ := rc.Texture(id)
		w, h := tex.Size()
		size = image.Pt(int(w), int(h))
	} else {
		strip := generatedStrip(16, 4)
		id, err = rc.LoadTextureRGBA(strip)
		if err != nil {
			return atlas.Sprite{}, err
		}
		size = strip.Bounds().Size()
	}
	frameW := size.X / 4
	return atlas.SpriteFromPixels(id, size, image.Rect(0, 0, frameW, size.Y), 4), nil
}

// generatedStrip draws n square frames of side px, each a differently
// colored checkerboard.
func generatedStrip(px, n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, px*n, px))
	palette := [][4]uint8{
		{230, 80, 60, 255},
		{240, 200, 60, 255},
		{80, 200, 120, 255},
		{70, 130, 230, 255},
	}
	for f := 0; f < n; f++ {
		c := palette[f%len(palette)]
		for y := 0; y < px; y++ {
			for x := 0; x < px; x++ {
				i := img.PixOffset(f*px+x, y)
				if (x/4+y/4)%2 == 0 {
					copy(img.Pix[i:i+4], c[:])
				} else {
					copy(img.Pix[i:i+4], []uint8{255, 255, 255, 255})
				}
			}
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
