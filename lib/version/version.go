// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the gptlink build version.
package version

import "runtime/debug"

// Version is the release version, overridden at build time via
// -ldflags "-X .../lib/version.Version=v1.2.3".
var Version = "dev"

// Info returns the version string, annotated with the VCS revision
// when the binary was built from a checkout.
func Info() string {
	info := Version
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
			info += " (" + setting.Value[:12] + ")"
			break
		}
	}
	return info
}
