// Package viewer hosts a GLFW window that blits an already-traced
// framebuffer each frame. It owns no scene or ray-tracing state — the tiled
// driver computes pixels on the CPU, and Window.Blit just uploads them as a
// texture and draws one full-screen quad, adapted from the teacher's
// renderer_opengl.go init/shader sequence but stripped to the single path a
// pure accumulator blit needs (no PBR, shadow, or line-rendering programs).
package viewer

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and OpenGL calls must run on the thread that owns the context.
	runtime.LockOSThread()
}

const (
	vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
    vUV = aUV;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

	fragmentShaderSource = `
#version 410 core
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D frame;
void main() {
    FragColor = texture(frame, vUV);
}
` + "\x00"
)

// Window is a minimal GLFW host for an RGB framebuffer of packed
// 0x00RRGGBB pixels, the same convention the tiled driver quantizes to.
type Window struct {
	win     *glfw.Window
	width   int
	height  int
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	pixels  []byte // scratch RGB8 buffer reused across frames
}

// New creates and shows a width x height window. Must be called from the
// main goroutine (or any goroutine the caller has pinned with
// runtime.LockOSThread, as glfw requires).
func New(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing opengl: %w", err)
	}

	w := &Window{win: win, width: width, height: height, pixels: make([]byte, width*height*3)}
	if err := w.setup(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) setup() error {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	w.program = program

	// Two triangles covering the whole viewport, UV flipped vertically
	// since row 0 of the driver's framebuffer is the top row.
	quad := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,

		-1, -1, 0, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return nil
}

// Blit uploads a framebuffer of packed 0x00RRGGBB pixels (row-major, row 0
// at the top) as a texture and draws the full-screen quad. Call
// SwapBuffers/PollEvents afterward to present and pump input.
func (w *Window) Blit(framebuffer []uint32) {
	for i, p := range framebuffer {
		w.pixels[i*3+0] = byte(p >> 16)
		w.pixels[i*3+1] = byte(p >> 8)
		w.pixels[i*3+2] = byte(p)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(w.program)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(w.width), int32(w.height), 0,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(w.pixels))

	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) Close()            { glfw.Terminate() }

func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("linking shader program: %s", string(log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("compiling shader: %s", string(log))
	}
	return shader, nil
}
