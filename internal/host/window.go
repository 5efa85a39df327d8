package host

// ListenerID identifies a registered resize listener. Zero is never issued.
type ListenerID uint64

// Events delivers window-level notifications.
type Events interface {
	AddResizeListener(fn func()) ListenerID
	RemoveResizeListener(id ListenerID)
}

// Container is the area the drawing surface fills. Size is in logical pixels.
type Container interface {
	Size() (width, height int)
	PixelRatio() float32
}

type resizeListener struct {
	id ListenerID
	fn func()
}

// Window fans resize notifications out to listeners in registration order.
type Window struct {
	next      ListenerID
	listeners []resizeListener
}

// NewWindow returns a Window with no listeners.
func NewWindow() *Window {
	return &Window{}
}

// AddResizeListener registers fn and returns a handle for RemoveResizeListener.
func (w *Window) AddResizeListener(fn func()) ListenerID {
	w.next++
	w.listeners = append(w.listeners, resizeListener{id: w.next, fn: fn})
	return w.next
}

// RemoveResizeListener unregisters a listener. Unknown ids are ignored.
func (w *Window) RemoveResizeListener(id ListenerID) {
	for i, l := range w.listeners {
		if l.id == id {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

// NotifyResize calls every listener registered at entry.
func (w *Window) NotifyResize() {
	snapshot := make([]resizeListener, len(w.listeners))
	copy(snapshot, w.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

// Listeners returns the number of registered resize listeners.
func (w *Window) Listeners() int {
	return len(w.listeners)
}

// StaticContainer is a Container with a fixed, settable size.
type StaticContainer struct {
	Width, Height int
	Ratio         float32
}

// Size implements Container.
func (c *StaticContainer) Size() (int, int) {
	return c.Width, c.Height
}

// PixelRatio implements Container. Zero is reported as 1.
func (c *StaticContainer) PixelRatio() float32 {
	if c.Ratio == 0 {
		return 1
	}
	return c.Ratio
}
