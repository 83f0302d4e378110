package repository

import "os"

// tableName resolves a table's env override, falling back to the name the
// local bootstrap scripts create.
func tableName(envKey, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}
