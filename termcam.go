package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/eiannone/keyboard"
)

// SilentInputManager reads keyboard input on a background goroutine without
// blocking or echoing to the terminal, adapted verbatim in spirit from the
// teacher's win_input.go — same non-blocking keyboard.GetKey() loop, same
// map-of-pressed-runes state — repurposed here to drive a fly camera
// instead of a game character.
type SilentInputManager struct {
	keys     map[rune]bool
	mutex    sync.RWMutex
	running  bool
	stopChan chan bool
}

type InputState struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
	RotLeft, RotRight bool
	RotUp, RotDown    bool
	Quit              bool
}

func NewSilentInputManager() *SilentInputManager {
	return &SilentInputManager{
		keys:     make(map[rune]bool),
		stopChan: make(chan bool),
	}
}

func (sim *SilentInputManager) Start() error {
	if sim.running {
		return nil
	}
	if err := keyboard.Open(); err != nil {
		return err
	}
	sim.running = true

	go func() {
		for {
			select {
			case <-sim.stopChan:
				return
			default:
				char, key, err := keyboard.GetKey()
				if err != nil {
					continue
				}
				sim.mutex.Lock()
				if char != 0 {
					sim.keys[char] = true
				}
				switch key {
				case keyboard.KeyEsc:
					sim.keys['x'] = true
				case keyboard.KeyArrowUp:
					sim.keys['i'] = true
				case keyboard.KeyArrowDown:
					sim.keys['k'] = true
				case keyboard.KeyArrowLeft:
					sim.keys['j'] = true
				case keyboard.KeyArrowRight:
					sim.keys['l'] = true
				}
				sim.mutex.Unlock()
			}
		}
	}()
	return nil
}

func (sim *SilentInputManager) Stop() {
	if !sim.running {
		return
	}
	sim.running = false
	sim.stopChan <- true
	keyboard.Close()
}

func (sim *SilentInputManager) GetInputState() InputState {
	sim.mutex.RLock()
	defer sim.mutex.RUnlock()
	return InputState{
		Forward:  sim.keys['w'] || sim.keys['W'],
		Backward: sim.keys['s'] || sim.keys['S'],
		Left:     sim.keys['a'] || sim.keys['A'],
		Right:    sim.keys['d'] || sim.keys['D'],
		Up:       sim.keys['e'] || sim.keys['E'],
		Down:     sim.keys['q'] || sim.keys['Q'],
		RotLeft:  sim.keys['j'] || sim.keys['J'],
		RotRight: sim.keys['l'] || sim.keys['L'],
		RotUp:    sim.keys['i'] || sim.keys['I'],
		RotDown:  sim.keys['k'] || sim.keys['K'],
		Quit:     sim.keys['x'] || sim.keys['X'],
	}
}

func (sim *SilentInputManager) ClearKeys() {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()
	sim.keys = make(map[rune]bool)
}

// FlyCamera drives a Camera's eye position and look direction from an
// InputState each frame, adapted from the teacher's CameraController but
// working directly in Vec3/yaw-pitch terms since bvhtrace's Camera has no
// Transform object to delegate to.
type FlyCamera struct {
	Pos         Vec3
	Yaw, Pitch  float64
	MoveSpeed   float64
	RotSpeed    float64
	FovY        float64
	Aspect      float64
}

func NewFlyCamera(pos Vec3, fovY, aspect float64) *FlyCamera {
	return &FlyCamera{Pos: pos, FovY: fovY, Aspect: aspect, MoveSpeed: 2.0, RotSpeed: 0.05}
}

func (fc *FlyCamera) forward() Vec3 {
	return Vec3{
		X: math.Cos(fc.Pitch) * math.Sin(fc.Yaw),
		Y: math.Sin(fc.Pitch),
		Z: math.Cos(fc.Pitch) * math.Cos(fc.Yaw),
	}.Normalize()
}

func (fc *FlyCamera) right() Vec3 {
	return fc.forward().Cross(Vec3{0, 1, 0}).Normalize()
}

func (fc *FlyCamera) Update(input InputState) {
	fwd := fc.forward()
	rgt := fc.right()

	if input.Forward {
		fc.Pos = fc.Pos.Add(fwd.Scale(fc.MoveSpeed))
	}
	if input.Backward {
		fc.Pos = fc.Pos.Sub(fwd.Scale(fc.MoveSpeed))
	}
	if input.Right {
		fc.Pos = fc.Pos.Add(rgt.Scale(fc.MoveSpeed))
	}
	if input.Left {
		fc.Pos = fc.Pos.Sub(rgt.Scale(fc.MoveSpeed))
	}
	if input.Up {
		fc.Pos.Y += fc.MoveSpeed
	}
	if input.Down {
		fc.Pos.Y -= fc.MoveSpeed
	}
	if input.RotLeft {
		fc.Yaw -= fc.RotSpeed
	}
	if input.RotRight {
		fc.Yaw += fc.RotSpeed
	}
	const pitchLimit = math.Pi/2 - 0.1
	if input.RotUp {
		fc.Pitch = math.Min(fc.Pitch+fc.RotSpeed, pitchLimit)
	}
	if input.RotDown {
		fc.Pitch = math.Max(fc.Pitch-fc.RotSpeed, -pitchLimit)
	}
}

func (fc *FlyCamera) Camera() Camera {
	return NewCamera(fc.Pos, fc.Pos.Add(fc.forward()), Vec3{0, 1, 0}, fc.FovY, fc.Aspect)
}

// StatusLine renders a one-line position/heading readout for the flycam
// terminal host, tinted green via Color.ToANSI so it stands out against
// scrolling frame logs.
func (fc *FlyCamera) StatusLine() string {
	status := NewColor(120, 220, 120)
	return fmt.Sprintf("%spos=(%.2f,%.2f,%.2f) yaw=%.2f pitch=%.2f%s",
		status.ToANSI(), fc.Pos.X, fc.Pos.Y, fc.Pos.Z, fc.Yaw, fc.Pitch, ColorReset())
}
