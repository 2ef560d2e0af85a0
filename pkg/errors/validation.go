package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateVersion validates a version/ref string. The string is opaque to the
// traversal (tag, branch, or commit SHA) but must be present and printable.
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	for _, r := range version {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "version contains invalid control characters")
		}
	}
	return nil
}

// ValidateRepoURL performs a shallow shape check on a repository URL.
// Full owner/repo resolution happens in the remote source; this only rejects
// strings that cannot possibly name a repository.
func ValidateRepoURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return New(ErrCodeInvalidInput, "repository URL cannot be empty")
	}
	if strings.HasPrefix(rawURL, "http://") ||
		strings.HasPrefix(rawURL, "https://") ||
		strings.HasPrefix(rawURL, "git@") {
		return nil
	}
	return New(ErrCodeUnsupportedRepoURL, "unsupported repository URL: %q", rawURL)
}

// ValidateOutputImage validates the output image filename. Only PNG output is
// supported by the renderer handoff.
func ValidateOutputImage(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "output image filename cannot be empty")
	}
	if strings.ContainsAny(filename, "\x00") {
		return New(ErrCodeInvalidConfig, "output image filename contains invalid characters")
	}
	if !strings.HasSuffix(filename, ".png") {
		return New(ErrCodeInvalidConfig, "output image must have a .png extension: %q", filename)
	}
	return nil
}
