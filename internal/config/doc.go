// Package config loads the settings of a batch shadow detection run.
//
// Settings are layered with viper, lowest priority first:
//
//  1. built-in defaults
//  2. an optional YAML (or TOML/JSON) file
//  3. SHADOWT_* environment variables, e.g. SHADOWT_THRESHOLD_INPUT
//  4. command-line flags registered with RegisterFlags
//
// Keys use snake_case (threshold_input, ext_rgb, stretch_high); flags use
// the same names with dashes.
//
// In NIR mode the input directory holds an RVB sub-directory with the
// colour images and a PIR sub-directory with the matching near-infrared
// images, and water and vegetation are removed from every mask.
package config
