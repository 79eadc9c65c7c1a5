package orion

import (
	"slices"
	"sync"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
	"github.com/oliverbestmann/visor/runqueue"
)

// callLog records calls across all fakes, so tests can check their order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.calls)
}

func (l *callLog) count(call string) int {
	var n int
	for _, c := range l.all() {
		if c == call {
			n++
		}
	}

	return n
}

func (l *callLog) index(call string) int {
	return slices.Index(l.all(), call)
}

func (l *callLog) lastIndex(call string) int {
	calls := l.all()
	for idx := len(calls) - 1; idx >= 0; idx-- {
		if calls[idx] == call {
			return idx
		}
	}

	return -1
}

type fakeWorld struct {
	log *callLog

	paused      bool
	delegate    device.Delegate
	queue       *runqueue.Queue
	platformErr error
	initGLErr   error

	// called after every drawn frame
	onDraw func(frame int)
	draws  int
}

func (w *fakeWorld) InitializePlatform(_ glimpse.Host, queue *runqueue.Queue) error {
	w.log.record("InitializePlatform")
	w.queue = queue
	return w.platformErr
}

func (w *fakeWorld) ShutdownPlatform() {
	w.log.record("ShutdownPlatform")
}

func (w *fakeWorld) InitializeGL() error {
	w.log.record("InitializeGL")
	return w.initGLErr
}

func (w *fakeWorld) ShutdownGL() {
	w.log.record("ShutdownGL")
}

func (w *fakeWorld) Pause() {
	w.log.record("Pause")
	w.paused = true
}

func (w *fakeWorld) Resume() {
	w.log.record("Resume")
	w.paused = false
}

func (w *fakeWorld) IsPaused() bool {
	return w.paused
}

func (w *fakeWorld) Draw() {
	w.log.record("Draw")

	w.delegate.StartFrame()
	for _, eye := range device.Eyes {
		w.delegate.BindEye(eye)
	}
	w.delegate.EndFrame()

	w.draws++
	if w.onDraw != nil {
		w.onDraw(w.draws)
	}
}

func (w *fakeWorld) RegisterDeviceDelegate(delegate device.Delegate) {
	w.delegate = delegate
}

type fakeSurface struct {
	log *callLog

	initErr   error
	changeErr error

	// a window is bound, ready additionally requires a non-zero size
	bound bool
	ready bool

	// size the window reports on the next bind
	width, height uint32

	makeCurrent int
}

func (s *fakeSurface) Initialize(glimpse.Window) error {
	s.log.record("Initialize")
	if s.initErr != nil {
		return s.initErr
	}

	s.bind()
	return nil
}

func (s *fakeSurface) SurfaceChanged(glimpse.Window) error {
	s.log.record("SurfaceChanged")

	// a failed rebind leaves no window bound
	s.bound, s.ready = false, false
	if s.changeErr != nil {
		return s.changeErr
	}

	s.bind()
	return nil
}

func (s *fakeSurface) bind() {
	s.bound = true
	s.ready = s.width > 0 && s.height > 0
}

// MakeCurrent picks up size changes of the bound window.
func (s *fakeSurface) MakeCurrent() error {
	s.makeCurrent++

	if s.bound {
		s.ready = s.width > 0 && s.height > 0
	}

	return nil
}

func (s *fakeSurface) SurfaceDestroyed() {
	s.log.record("SurfaceDestroyed")
	s.bound, s.ready = false, false
}

func (s *fakeSurface) Destroy() {
	s.log.record("Destroy")
	s.bound, s.ready = false, false
}

func (s *fakeSurface) ClearFrame() {
	s.log.record("ClearFrame")
}

func (s *fakeSurface) IsSurfaceReady() bool {
	return s.ready
}

func (s *fakeSurface) Size() (uint32, uint32) {
	return s.width, s.height
}

func (s *fakeSurface) BeginFrame() error {
	s.log.record("BeginFrame")
	return nil
}

func (s *fakeSurface) BindEye(eye device.Eye, _ device.Viewport, _ glm.Vec4f) error {
	s.log.record("BindEye(" + eye.String() + ")")
	return nil
}

func (s *fakeSurface) EndFrame() error {
	s.log.record("EndFrame")
	return nil
}

// fakeDelegate is a delegate without hardware that records session changes
// and counts attempts to enter VR without a ready surface.
type fakeDelegate struct {
	device.Base

	log *callLog

	enterAttempts     int
	enterWithoutReady int
}

func newFakeDelegate(log *callLog) *fakeDelegate {
	d := &fakeDelegate{
		Base: device.NewBase("fake", 0.064, glm.DegToRad[float32](90)),
		log:  log,
	}

	d.OnEnter = func(device.Surface) error {
		log.record("EnterVR")
		return nil
	}

	d.OnLeave = func() {
		log.record("LeaveVR")
	}

	return d
}

func (d *fakeDelegate) Name() string {
	return "fake"
}

func (d *fakeDelegate) HeadTransform() glm.Mat4f {
	return glm.IdentityMat4[float32]()
}

func (d *fakeDelegate) ProcessEvents() {}

func (d *fakeDelegate) StartFrame() {
	d.BeginFrame(d.HeadTransform())
}

func (d *fakeDelegate) EnterVR(surface device.Surface) {
	d.enterAttempts++

	if surface == nil || !surface.IsSurfaceReady() {
		d.enterWithoutReady++
	}

	d.Base.EnterVR(surface)
}

// pollSpy reports every blocking poll before it blocks.
type pollSpy struct {
	*glimpse.ChannelHost
	blocking chan struct{}
}

func (p *pollSpy) PollEvents(block bool) {
	if block {
		select {
		case p.blocking <- struct{}{}:
		default:
		}
	}

	p.ChannelHost.PollEvents(block)
}
