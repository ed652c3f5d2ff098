/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config provides configuration management for the allocator binary.
//
// Configuration Types:
//
//   - Config: logging settings and the sections below
//   - ServerConfig: HTTP listen address and CORS origins
//   - LimiterConfig: problem size guardrail (strategy, max cells)
//   - OutputConfig: CLI output format and table display
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (ALLOCATOR_ prefix, e.g. ALLOCATOR_SERVER_ADDRESS)
//  3. YAML configuration file (--config)
//  4. Default values (lowest priority)
//
// Example usage:
//
//	fs := pflag.NewFlagSet("allocator", pflag.ExitOnError)
//	config.AddFlags(fs)
//	_ = fs.Parse(os.Args[1:])
//
//	cfg, err := config.Load(fs)
//	if err != nil {
//	    log.Error(err, "failed to load configuration")
//	    os.Exit(2)
//	}
//
// Configuration Validation:
//
// Values are validated on load with struct tags: enumerations (log level,
// limiter strategy, output format), required fields and numeric ranges.
package config
