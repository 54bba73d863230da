// Package config loads chart styles from TOML files and server settings
// from the environment.
//
// A style file overrides any subset of the built-in chart defaults:
//
//	[genome]
//	width = 1200
//
//	[scatter]
//	color_by = 3
//	stroke_width = 6
//	palette = ["#1b9e77", "#d95f02", "#7570b3"]
//
//	[violin]
//	seed = 7
//	margin = { top = 10, right = 30, bottom = 60, left = 40 }
//
// Unknown keys are rejected so typos do not silently fall back to the
// defaults.
//
// Server settings come from GENOVIZ_* variables; see [Server].
package config
