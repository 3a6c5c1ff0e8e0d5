package signals

import (
	"sync"
	"testing"
)

// TestRegisterInterruptHandler verifies interrupt handler registration.
func TestRegisterInterruptHandler(t *testing.T) {
	// Save original state
	originalInterrupters := interrupters
	defer func() { interrupters = originalInterrupters }()

	// Reset state
	interrupters = nil

	called := false
	handler := func() {
		called = true
	}

	RegisterInterruptHandler(handler)

	if len(interrupters) != 1 {
		t.Errorf("Expected 1 interrupter registered, got %d", len(interrupters))
	}

	// Trigger the handler
	handleInterrupted()

	if !called {
		t.Error("Interrupt handler was not called")
	}
}

// TestMultipleInterruptHandlers verifies multiple handlers all run.
func TestMultipleInterruptHandlers(t *testing.T) {
	originalInterrupters := interrupters
	defer func() { interrupters = originalInterrupters }()

	interrupters = nil

	callCount := 0
	var mu sync.Mutex

	for i := 0; i < 3; i++ {
		RegisterInterruptHandler(func() {
			mu.Lock()
			callCount++
			mu.Unlock()
		})
	}

	handleInterrupted()

	if callCount != 3 {
		t.Errorf("Expected 3 handler calls, got %d", callCount)
	}
}

// TestDeregisterInterruptHandler verifies a deregistered handler no longer runs.
func TestDeregisterInterruptHandler(t *testing.T) {
	originalInterrupters := interrupters
	defer func() { interrupters = originalInterrupters }()

	interrupters = nil

	firstCalled := false
	secondCalled := false

	id := RegisterInterruptHandler(func() { firstCalled = true })
	RegisterInterruptHandler(func() { secondCalled = true })

	DeregisterInterruptHandler(id)
	handleInterrupted()

	if firstCalled {
		t.Error("Deregistered handler should not be called")
	}
	if !secondCalled {
		t.Error("Remaining handler should still be called")
	}
}

// TestNilInterruptHandler verifies nil handlers are ignored.
func TestNilInterruptHandler(t *testing.T) {
	originalInterrupters := interrupters
	defer func() { interrupters = originalInterrupters }()

	interrupters = nil

	if id := RegisterInterruptHandler(nil); id != -1 {
		t.Errorf("Registering a nil handler should return -1, got %d", id)
	}
	if len(interrupters) != 0 {
		t.Errorf("Nil handler should not be registered, got %d handlers", len(interrupters))
	}
}

// TestPanickingHandlerDoesNotStopDispatch verifies that a panicking handler
// does not prevent later handlers from running.
func TestPanickingHandlerDoesNotStopDispatch(t *testing.T) {
	originalInterrupters := interrupters
	defer func() { interrupters = originalInterrupters }()

	interrupters = nil

	called := false
	RegisterInterruptHandler(func() { panic("boom") })
	RegisterInterruptHandler(func() { called = true })

	handleInterrupted()

	if !called {
		t.Error("Handler after a panicking handler should still be called")
	}
}
