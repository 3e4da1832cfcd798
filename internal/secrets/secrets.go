// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets sources API credentials from the environment or a local
// .env-style file. Keys are opaque bearer strings; absence of a credential
// is never an error, it only disables the tier that needs it.
package secrets

import (
	"bufio"
	"os"
	"strings"
)

// DefaultEnvFile is the .env-style file consulted when the environment does
// not carry the credential.
const DefaultEnvFile = ".env"

// APIKey returns the credential named envVar. The process environment wins;
// otherwise the first "envVar=value" line in envFile is used. Returns ""
// when neither source has a value.
func APIKey(envVar, envFile string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	return fromEnvFile(envVar, envFile)
}

// fromEnvFile scans a KEY=value file for the named key. Missing or
// unreadable files yield "".
func fromEnvFile(key, path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	prefix := key + "="
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
