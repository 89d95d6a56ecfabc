// Package services implements the driving port interfaces.
// Services contain the core catalog logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Query, sort and projection are
// synchronous functions over a store snapshot.
package services
