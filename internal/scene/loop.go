package scene

// Per-frame rotation applied while auto-rotate is on, in radians.
const (
	RotateStepX = 0.01
	RotateStepY = 0.015
)

// frame is the self-rescheduling render callback. It books the next frame before doing any work
// so a slow draw never stops the loop; after Teardown it stops rescheduling.
func (m *Manager) frame() {
	if m.renderer == nil {
		return
	}
	m.frameID = m.opts.Scheduler.RequestFrame(m.frame)
	if m.autoRotate && m.mesh != nil {
		m.mesh.Rotation.X += RotateStepX
		m.mesh.Rotation.Y += RotateStepY
	}
	m.renderer.Render(m.scene, m.camera)
}
