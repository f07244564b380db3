package pipeline

// Bridge describes how the compiled crate is exposed to Python.
// Exactly one variant is active per project; branching on the concrete
// type should stay exhaustive (type switch with no silent default).
type Bridge interface {
	isBridge()
}

// Bindings is a linked extension module built against a specific
// interpreter version through a bindings crate (pyo3, rust-cpython).
type Bindings struct {
	// Crate is the bindings crate name, e.g. "pyo3".
	Crate string

	// MinorVersion is the minimum supported CPython minor version.
	MinorVersion int
}

// BindingsAbi3 is a stable-ABI extension module. One wheel covers every
// interpreter from the declared minimum upward, so builds never need to
// discover installed interpreters.
type BindingsAbi3 struct {
	Major int
	Minor int
}

// Cffi is an extension exposed through the C FFI layer.
type Cffi struct{}

// UniFfi is an extension exposed through uniffi-generated bindings.
type UniFfi struct{}

// Bin is a standalone executable. Bindings is non-nil when the crate
// additionally ships a bindings-based entry point.
type Bin struct {
	Bindings *Bindings
}

func (Bindings) isBridge()     {}
func (BindingsAbi3) isBridge() {}
func (Cffi) isBridge()         {}
func (UniFfi) isBridge()       {}
func (Bin) isBridge()          {}

// IsBin reports whether the bridge denotes a standalone executable.
func IsBin(b Bridge) bool {
	_, ok := b.(Bin)
	return ok
}

// IsAbi3 reports whether the bridge is the stable-ABI variant.
func IsAbi3(b Bridge) bool {
	_, ok := b.(BindingsAbi3)
	return ok
}

// NeedsPython reports whether a host interpreter must be present at build
// time. Every variant needs one except a bare binary without bindings.
func NeedsPython(b Bridge) bool {
	switch v := b.(type) {
	case Bindings, BindingsAbi3, Cffi, UniFfi:
		return true
	case Bin:
		return v.Bindings != nil
	}
	return false
}
