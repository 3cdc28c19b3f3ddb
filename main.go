// Command bvhtrace renders a grid of instanced meshes through a two-level
// BVH ray tracer, either headless to a PPM file or live in a GLFW window
// with a terminal-driven fly camera — the same cpuprofile/memprofile flag
// pair and fatal-on-load-error style as the teacher's main.go, generalized
// from its demo-menu entrypoint to a single configurable render command.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/arnevik/bvhtrace/viewer"
)

func main() {
	width := flag.Int("width", 800, "framebuffer width")
	height := flag.Int("height", 600, "framebuffer height")
	meshPath := flag.String("mesh", "", "path to a .tri triangle soup file (mutually exclusive with -obj)")
	objPath := flag.String("obj", "", "path to a Wavefront .obj mesh (mutually exclusive with -mesh)")
	texturePath := flag.String("texture", "", "diffuse texture for -obj (png/jpeg)")
	skyPath := flag.String("sky", "", "path to a binary HDR environment map")
	bins := flag.Int("bins", 8, "SAH binning resolution per BLAS split, clamped to [4,32]")
	numInstances := flag.Int("instances", 1, "number of mesh instances placed on a grid")
	spacing := flag.Float64("spacing", 2.5, "grid spacing between instances")
	shouldMove := flag.Bool("animate", false, "bob and spin instances every frame")
	halfMirrored := flag.Bool("half-mirrored", false, "render every odd-indexed instance as a mirror")
	shaderName := flag.String("shader", "whitted", "shading mode: whitted or barycentric")
	workers := flag.Int("workers", 0, "tile worker count, 0 selects runtime.NumCPU()")
	statsInterval := flag.Duration("stats-interval", 60*time.Second, "ray-counter stats reporting interval, 0 disables")
	ringCapacity := flag.Int("ring-capacity", 0, "ray counter ring capacity, 0 selects the default 2^19")
	frames := flag.Int("frames", 1, "frames to render headless before exiting (ignored with -viewer)")
	viewerOn := flag.Bool("viewer", false, "open a live GLFW window instead of rendering headless")
	flyCam := flag.Bool("flycam", false, "drive the viewer camera from terminal keyboard input")
	output := flag.String("o", "out.ppm", "headless output PPM path (last rendered frame)")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			return
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			return
		}
		defer pprof.StopCPUProfile()
		fmt.Printf("CPU profiling enabled, writing to %s\n", *cpuprofile)
	}
	if *memprofile != "" {
		defer func() {
			f, err := os.Create(*memprofile)
			if err != nil {
				fmt.Printf("could not create memory profile: %v\n", err)
				return
			}
			defer f.Close()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Printf("could not write memory profile: %v\n", err)
			}
			fmt.Printf("Memory profile written to %s\n", *memprofile)
		}()
	}

	if *meshPath == "" && *objPath == "" {
		fmt.Println("one of -mesh or -obj is required")
		os.Exit(1)
	}

	mesh, err := loadMesh(*meshPath, *objPath, *texturePath, *bins)
	if err != nil {
		fmt.Printf("fatal: %v\n", err)
		os.Exit(1)
	}

	scene := NewScene()
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, *numInstances, *spacing)
	scene.HalfMirrored = *halfMirrored
	scene.ShouldMove = *shouldMove

	if *skyPath != "" {
		sky, err := LoadEnvMap(*skyPath)
		if err != nil {
			fmt.Printf("fatal: loading sky: %v\n", err)
			os.Exit(1)
		}
		scene.Sky = sky
	}

	var shader Shader
	switch *shaderName {
	case "barycentric", "bary":
		shader = BaryShader{}
	default:
		shader = NewWhittedShader()
	}

	ring := NewCounterRing(*ringCapacity)

	driver := NewTiledDriver(*width, *height, shader, ring)
	if *workers > 0 {
		driver.NumWorkers = *workers
	}
	driver.StatsInterval = *statsInterval

	profiler := NewProfiler(120)
	aspect := float64(*width) / float64(*height)

	if *viewerOn {
		runViewer(scene, driver, profiler, aspect, *flyCam)
		return
	}
	runHeadless(scene, driver, profiler, aspect, *frames, *output)
}

func loadMesh(meshPath, objPath, texturePath string, bins int) (*MeshData, error) {
	if meshPath != "" {
		tris, err := LoadTriangleFile(meshPath)
		if err != nil {
			return nil, err
		}
		return NewMeshData(tris, nil, nil, bins), nil
	}
	tris, triEx, surf, err := LoadTexturedMesh(objPath, texturePath)
	if err != nil {
		return nil, err
	}
	return NewMeshData(tris, triEx, surf, bins), nil
}

func runHeadless(scene *Scene, driver *TiledDriver, profiler *Profiler, aspect float64, frameCount int, output string) {
	cam := NewCamera(Vec3{X: 0, Y: 2, Z: -8}, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, 1.0, aspect)

	var framebuffer []uint32
	for i := 0; i < frameCount; i++ {
		profiler.BeginFrame()
		scene.Animate(1.0 / 60.0)

		profiler.BeginBuild()
		scene.RebuildTLAS()
		profiler.EndBuild()

		profiler.BeginRender()
		framebuffer = driver.RenderFrame(scene, cam)
		profiler.EndRender()

		profiler.EndFrame()
	}

	fmt.Println(profiler.AverageStats())
	if err := writePPM(output, driver.Width, driver.Height, framebuffer); err != nil {
		fmt.Printf("fatal: writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", output)
}

func runViewer(scene *Scene, driver *TiledDriver, profiler *Profiler, aspect float64, useFlyCam bool) {
	win, err := viewer.New(driver.Width, driver.Height, "bvhtrace")
	if err != nil {
		fmt.Printf("fatal: opening viewer: %v\n", err)
		os.Exit(1)
	}
	defer win.Close()

	fly := NewFlyCamera(Vec3{X: 0, Y: 2, Z: -8}, 1.0, aspect)
	var input *SilentInputManager
	if useFlyCam {
		input = NewSilentInputManager()
		if err := input.Start(); err != nil {
			fmt.Printf("fatal: starting terminal input: %v\n", err)
			os.Exit(1)
		}
		defer input.Stop()
	}

	for !win.ShouldClose() {
		profiler.BeginFrame()

		if input != nil {
			state := input.GetInputState()
			if state.Quit {
				return
			}
			fly.Update(state)
			fmt.Println(fly.StatusLine())
		}

		scene.Animate(1.0 / 60.0)

		profiler.BeginBuild()
		scene.RebuildTLAS()
		profiler.EndBuild()

		profiler.BeginRender()
		framebuffer := driver.RenderFrame(scene, fly.Camera())
		profiler.EndRender()

		win.Blit(framebuffer)
		win.SwapBuffers()
		win.PollEvents()

		profiler.EndFrame()
	}
}

func writePPM(path string, width, height int, pixels []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			row[x*3+0] = byte(p >> 16)
			row[x*3+1] = byte(p >> 8)
			row[x*3+2] = byte(p)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
