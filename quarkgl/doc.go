// Package quarkgl provides a minimal, predictable software 3D engine.
//
// QuarkGL is intended for visualization: meshes sharing geometry, simple scenes, and
// interactive views (damped orbit, auto-rotation, zoom). It is not a game engine and
// does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target. Triangle
// setup runs once per frame; rasterization is split into horizontal bands that can
// run on several goroutines (see Renderer.SetWorkers).
//
// Numeric backend is float32 (see Scalar).
package quarkgl
