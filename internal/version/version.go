// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components whose
// behavior is baked into cached tool-choice completions.
//
// The version strings are part of every cache key, so bumping one invalidates
// all older cached entries for free: if the tool schemas change, a cached
// completion that chose a tool against the old schema must never be replayed.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the cache-relevant parts of
// the assistant. Manually increment a version here before deploying a change
// to that component.
var ComponentVersions = struct {
	// PromptLogic should be updated whenever the tool-selection system prompt
	// template or its rendering changes.
	PromptLogic string

	// ToolSchemas should be updated whenever a tool's parameter schema changes
	// (new fields, renamed tags, different enums).
	ToolSchemas string
}{
	PromptLogic: "v1.0",
	ToolSchemas: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for
// caching tool-choice completions. It combines a prefix, a hash of the input,
// and the current component versions, so any logic change produces fresh keys.
//
// Example output: "toolchoice:a1b2c3d4...:pv1.0_sv1.0"
func GenerateVersionedCacheKey(prefix, input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	inputHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("p%s_s%s",
		ComponentVersions.PromptLogic,
		ComponentVersions.ToolSchemas,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, inputHash, versionString)
}
