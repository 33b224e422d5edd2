package libemit

import (
	"github.com/stretchr/testify/mock"
)

// mockEmitter implements Emitter only, so Emittable has to fall back to its
// own EmitMany, Listen and Unlisten.
type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) On(event string, callback Callback, opts ...Option) {
	m.Called(event, callback, opts)
}

func (m *mockEmitter) Once(event string, callback Callback, opts ...Option) {
	m.Called(event, callback, opts)
}

func (m *mockEmitter) Off(event string, callback Callback) {
	m.Called(event, callback)
}

func (m *mockEmitter) Emit(event string, params ...any) *Event {
	args := m.Called(event, params)
	evt, _ := args.Get(0).(*Event)
	return evt
}

// onlyEmitter hides every method of the wrapped emitter except the Emitter
// interface.
type onlyEmitter struct {
	Emitter
}

// document is a host type embedding the mixin.
type document struct {
	Emittable

	title string
}
