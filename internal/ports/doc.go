// Package ports defines the interfaces that connect the pipeline core to
// infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the pipeline needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Transport]: A line-oriented byte stream with per-read timeouts
//   - [FrameSource]: Produces validated raw frames (or the defined fallback)
//   - [Upsampler]: Turns a raw frame into the interpolated surface
//   - [Presenter]: Consumes the (raw, interpolated) pair each tick
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces;
// concrete implementations live in internal/adapters and can be swapped
// for fakes in tests.
package ports
