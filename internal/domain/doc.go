// Package domain contains the core entities and value objects for thermalmap.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (serial ports, MQTT, logging) and
// contains only the data model and its invariants.
//
// # Entities
//
//   - [RawFrame]: An 8x8 sensor-resolution temperature grid with its capture time
//   - [Surface]: The 80x80 upsampled estimate derived from one RawFrame
//   - [TickResult]: The (raw, interpolated) pair produced by one pipeline tick
//   - [Range]: A display clamp band for a presented channel
//
// # Design Principles
//
// Domain entities are:
//   - Fixed-size value types so grid dimensions hold by construction
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
