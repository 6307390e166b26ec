package runtime

import "testing"

type treeWidget struct {
	name     string
	log      *[]string
	children []Widget
}

func (w *treeWidget) Measure(c Constraints) Size { return Size{} }
func (w *treeWidget) Layout(bounds Rect)         {}
func (w *treeWidget) Render(ctx RenderContext)   {}
func (w *treeWidget) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}
func (w *treeWidget) ChildWidgets() []Widget  { return w.children }
func (w *treeWidget) Mount()                  { w.record("mount") }
func (w *treeWidget) Unmount()                { w.record("unmount") }
func (w *treeWidget) Bind(services Services)  { w.record("bind") }
func (w *treeWidget) Unbind()                 { w.record("unbind") }
func (w *treeWidget) record(event string)     { *w.log = append(*w.log, event+":"+w.name) }

func newTree(log *[]string) *treeWidget {
	child := &treeWidget{name: "child", log: log}
	return &treeWidget{name: "root", log: log, children: []Widget{child}}
}

func TestScreen_AttachOrder(t *testing.T) {
	var log []string
	screen := NewScreen(10, 5)
	screen.SetServices(NewApp(AppConfig{}).Services())

	screen.SetRoot(newTree(&log))
	screen.SetRoot(nil)

	want := []string{
		"bind:root", "bind:child", "mount:root", "mount:child",
		"unmount:child", "unmount:root", "unbind:child", "unbind:root",
	}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q (%v)", i, want[i], log[i], log)
		}
	}
}

func TestScreen_WithoutServicesSkipsBind(t *testing.T) {
	var log []string
	screen := NewScreen(10, 5)
	screen.SetRoot(newTree(&log))
	for _, event := range log {
		if event == "bind:root" || event == "bind:child" {
			t.Fatalf("expected no bind without services, got %v", log)
		}
	}
}

func TestScreen_LayerLifecycle(t *testing.T) {
	var rootLog, overlayLog []string
	screen := NewScreen(10, 5)
	screen.SetServices(NewApp(AppConfig{}).Services())
	screen.SetRoot(newTree(&rootLog))
	screen.PushLayer(&treeWidget{name: "overlay", log: &overlayLog}, true)

	if !screen.PopLayer() {
		t.Fatalf("expected PopLayer to succeed")
	}
	if screen.PopLayer() {
		t.Fatalf("expected base layer to stay")
	}
	if len(overlayLog) != 4 {
		t.Fatalf("expected overlay bound, mounted, unmounted and unbound, got %v", overlayLog)
	}
	for _, event := range rootLog {
		if event == "unmount:root" {
			t.Fatalf("expected root to stay mounted")
		}
	}
}
