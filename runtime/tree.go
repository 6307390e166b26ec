package runtime

// Lifecycle is implemented by widgets that need mount and unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when detached.
type Unbindable interface {
	Unbind()
}

// Walk visits root and its descendants. Parents come before children
// unless postOrder is set.
func Walk(root Widget, postOrder bool, fn func(Widget)) {
	if root == nil {
		return
	}
	if !postOrder {
		fn(root)
	}
	if parent, ok := root.(ChildProvider); ok {
		for _, child := range parent.ChildWidgets() {
			Walk(child, postOrder, fn)
		}
	}
	if postOrder {
		fn(root)
	}
}

// MountTree calls Mount parent first.
func MountTree(root Widget) {
	Walk(root, false, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree calls Unmount children first.
func UnmountTree(root Widget) {
	Walk(root, true, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

// BindTree hands services to every Bindable widget.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	Walk(root, false, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	})
}

// UnbindTree calls Unbind children first.
func UnbindTree(root Widget) {
	Walk(root, true, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}
