// Package pod moves plain-old-data values across the process boundary using
// their in-memory layout. T must be POD: no pointers or Go-managed references
// anywhere in the type, or the raw bytes are meaningless in the target.
package pod

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"freecam/process"
)

func SizeOf[T any]() process.Size {
	var t T
	return process.Size(unsafe.Sizeof(t))
}

// ReadT reads sizeof(T) bytes at addr and reinterprets them as a T.
func ReadT[T any](mem process.Reader, addr process.Address) (T, error) {
	var zero T

	size := SizeOf[T]()
	if size == 0 {
		return zero, errors.New("ReadT: size of T is zero")
	}
	if hasPointers[T]() {
		return zero, errors.New("ReadT: T contains pointers; not POD-safe")
	}

	data, err := mem.ReadMemory(addr, size)
	if err != nil {
		return zero, err
	}
	if len(data) < int(size) {
		return zero, fmt.Errorf("ReadT: short buffer: want %d, got %d", size, len(data))
	}

	var out T
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), int(size))
	copy(dst, data[:size])
	return out, nil
}

// WriteT serializes v with its in-memory layout and writes it at addr.
func WriteT[T any](mem process.Writer, addr process.Address, v T) error {
	if hasPointers[T]() {
		return errors.New("WriteT: T contains pointers; not POD-safe")
	}
	return mem.WriteMemory(addr, Bytes(v))
}

// Bytes copies the raw in-memory representation of v into a fresh slice.
func Bytes[T any](v T) []byte {
	size := int(unsafe.Sizeof(v))
	if size == 0 {
		return []byte{}
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	out := make([]byte, size)
	copy(out, src)
	return out
}

// hasPointers reports whether T (recursively) contains any pointer-like fields.
func hasPointers[T any]() bool {
	var t T
	return typeHasPointers(reflect.TypeOf(t))
}

func typeHasPointers(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return typeHasPointers(rt.Elem())
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			if typeHasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// bool, ints, uints, floats, complex, etc.
		return false
	}
}
