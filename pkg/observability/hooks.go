// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline stages and written files.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetOutputHooks(&myOutputHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnReadStart(ctx, path)
//	// ... decode the export ...
//	observability.Pipeline().OnReadComplete(ctx, path, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// Read events
	OnReadStart(ctx context.Context, path string)
	OnReadComplete(ctx context.Context, path string, rows int, duration time.Duration, err error)

	// Build events
	OnBuildComplete(ctx context.Context, panels, warnings int, duration time.Duration, err error)

	// Layout events, one per panel
	OnLayoutComplete(ctx context.Context, panel string, boxes int, duration time.Duration)

	// Render events, one per panel
	OnRenderStart(ctx context.Context, panel string, formats []string)
	OnRenderComplete(ctx context.Context, panel string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events about files written to the output directory.
type OutputHooks interface {
	// OnFileWritten records a written file and its size in bytes.
	OnFileWritten(ctx context.Context, path string, size int)

	// OnFileError records a file that could not be written.
	OnFileError(ctx context.Context, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string)                                      {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, int, time.Duration, error)        {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration)             {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnFileWritten(context.Context, string, int) {}
func (NoopOutputHooks) OnFileError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	outputHooks   OutputHooks   = NoopOutputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	outputHooks = NoopOutputHooks{}
}
