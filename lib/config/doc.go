// Package config loads the rtshim runtime configuration with viper and turns
// it into a ready shim.Lib.
//
// # Sources
//
// Values are resolved in viper's usual order: explicit Set calls, RTSHIM_*
// environment variables (dots become underscores, so assert.rate_limit is
// RTSHIM_ASSERT_RATE_LIMIT), the config file, then Defaults.
//
// The config file is the one named by CfgFile, or rtshim.yaml found in
// $HOME/.rtshim or the working directory. A missing default file is not an
// error; a missing explicit file is.
//
// # Keys
//
//	assert.output      stderr | stdout | discard | logger
//	assert.rate_limit  failures per second delivered to the sink, 0 = unlimited
//	assert.burst       rate limiter burst
//	assert.settle      pause after each delivered failure
//	assert.history     failures kept for inspection
//	critical.platform  none | sigmask
//	shim.banner        print the init banner
//	shim.trace         log every critical-section transition
package config
