//go:build !ebiten

package interactive

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/scene"
)

var (
	//go:embed shaders/kifs.vert
	vertexShaderSource string

	//go:embed shaders/kifs.frag
	fragmentShaderSource string
)

// Full screen quad drawn as a triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// An interactive opengl-based renderer.
type interactiveGLRenderer struct {
	ctrl    *scene.Controller
	opts    renderer.Options
	tracker *renderer.InputTracker
	stats   renderer.FrameStats

	// opengl handles
	window   *glfw.Window
	program  uint32
	quadVbo  uint32
	uniforms map[string]int32

	cursorCaptured bool
}

// NewInteractive creates a window and compiles the ray-marching shader. The
// returned renderer ticks ctrl once per displayed frame.
func NewInteractive(ctrl *scene.Controller, opts renderer.Options) (renderer.Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		ctrl:    ctrl,
		opts:    opts,
		tracker: renderer.NewInputTracker(),
	}

	if err := r.initGL(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *interactiveGLRenderer) initGL() error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	viewport := r.opts.Viewport()
	r.window, err = glfw.CreateWindow(viewport[0], viewport[1], r.opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}
	logger.Infof("opengl version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if r.program, err = linkProgram(vertexShaderSource, fragmentShaderSource); err != nil {
		return err
	}

	r.uniforms = make(map[string]int32)
	for _, name := range []string{"_CamMat", "_Scale", "_Ang1", "_Ang2", "_Color", "_Shift", "_FractalIter", "_Resolution"} {
		r.uniforms[name] = gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	}

	gl.GenBuffers(1, &r.quadVbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	// Bind event callbacks
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetMouseButtonCallback(r.onMouseEvent)
	r.captureCursor(true)

	return nil
}

// Close the window and release GL resources.
func (r *interactiveGLRenderer) Close() {
	if r.window == nil {
		glfw.Terminate()
		return
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
		gl.DeleteBuffers(1, &r.quadVbo)
		r.program = 0
	}
	r.window.SetShouldClose(true)
	r.window.Destroy()
	r.window = nil
	glfw.Terminate()
}

// Stats returns the statistics for the frames rendered so far.
func (r *interactiveGLRenderer) Stats() renderer.FrameStats {
	return r.stats
}

// Render frames until the window is closed.
func (r *interactiveGLRenderer) Render() error {
	if err := r.draw(r.ctrl.Params()); err != nil {
		return err
	}

	last := time.Now()
	for r.window != nil && !r.window.ShouldClose() {
		glfw.PollEvents()

		start := time.Now()
		dt := start.Sub(last)
		last = start

		params := r.ctrl.Tick(r.pollInput(), dt)
		if err := publishMirrors(r.opts, params); err != nil {
			return err
		}
		if err := r.draw(params); err != nil {
			return err
		}

		end := time.Now()
		r.stats.Record(end, end.Sub(start), params.FractalIter)
	}
	return nil
}

func (r *interactiveGLRenderer) pollInput() scene.Input {
	w, h := r.window.GetFramebufferSize()
	state := renderer.DeviceState{
		Left:      r.window.GetKey(glfw.KeyA) == glfw.Press,
		Right:     r.window.GetKey(glfw.KeyD) == glfw.Press,
		Forward:   r.window.GetKey(glfw.KeyW) == glfw.Press,
		Backward:  r.window.GetKey(glfw.KeyS) == glfw.Press,
		Randomize: r.window.GetKey(glfw.KeyR) == glfw.Press,
		Viewport:  [2]int{w, h},
	}
	if r.cursorCaptured {
		state.CursorX, state.CursorY = r.window.GetCursorPos()
	}
	return r.tracker.Next(state)
}

func (r *interactiveGLRenderer) draw(params scene.RenderParams) error {
	w, h := params.Resolution[0], params.Resolution[1]
	if w <= 0 || h <= 0 {
		w, h = r.window.GetFramebufferSize()
	}

	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)

	gl.UniformMatrix4fv(r.uniforms["_CamMat"], 1, false, &params.CamMat[0])
	gl.Uniform1f(r.uniforms["_Scale"], params.Scale)
	gl.Uniform1f(r.uniforms["_Ang1"], params.Angle1)
	gl.Uniform1f(r.uniforms["_Ang2"], params.Angle2)
	gl.Uniform3f(r.uniforms["_Color"], params.Color[0], params.Color[1], params.Color[2])
	gl.Uniform3f(r.uniforms["_Shift"], params.Shift[0], params.Shift[1], params.Shift[2])
	gl.Uniform1i(r.uniforms["_FractalIter"], int32(params.FractalIter))
	gl.Uniform2f(r.uniforms["_Resolution"], float32(w), float32(h))

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.DisableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.window.SwapBuffers()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error while drawing frame %d: 0x%x", params.Frame, code)
	}
	return nil
}

func (r *interactiveGLRenderer) captureCursor(capture bool) {
	r.cursorCaptured = capture
	if capture {
		r.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	r.tracker.Reset()
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		// Release the cursor first; a second press closes the window
		if r.cursorCaptured {
			r.captureCursor(false)
			return
		}
		w.SetShouldClose(true)
	}
}

func (r *interactiveGLRenderer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button == glfw.MouseButtonLeft && action == glfw.Press && !r.cursorCaptured {
		r.captureCursor(true)
	}
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("failed to compile vertex shader: %s", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("failed to compile fragment shader: %s", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindAttribLocation(program, 0, gl.Str("aPos\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(info))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link shader program: %s", strings.TrimRight(info, "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(info, "\x00"))
	}

	return shader, nil
}
