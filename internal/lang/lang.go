package lang

import (
	"path/filepath"
	"strings"
)

// Facts about the source-repository layouts we scan: which files count as
// source, which directories hold build products or vendored dependencies, and
// what marks a directory as an independently-buildable package.
//
// The tool targets Swift repositories. Objective-C and Metal files commonly
// live alongside Swift in the same tree, so they are included in searches, but
// only Swift files support reference expansion.
const (
	// PrimaryExtension is the extension of the language the tool is built for.
	// Reference expansion is only supported for files with this extension.
	PrimaryExtension = ".swift"

	// ManifestFilename marks a directory as a package root.
	ManifestFilename = "Package.swift"

	// BuildDirName is the build-artifact directory produced by the Swift
	// toolchain. Nothing under it is ever scanned.
	BuildDirName = ".build"

	// CommentToken starts a single-line comment.
	CommentToken = "//"
)

// DeclKeywords introduce a named type declaration. A candidate type name
// following one of these is treated as a definition site.
var DeclKeywords = []string{"class", "struct", "enum", "protocol", "actor", "typealias"}

var sourceExtensions = map[string]bool{
	".swift": true,
	".h":     true,
	".m":     true,
	".mm":    true,
	".metal": true,
}

// excludedDirNames are directory basenames that are skipped during every
// traversal: build products plus vendored dependency checkouts.
var excludedDirNames = map[string]bool{
	BuildDirName:   true,
	".git":         true,
	".swiftpm":     true,
	"Pods":         true,
	"Carthage":     true,
	"DerivedData":  true,
	"node_modules": true,
	"xcuserdata":   true,
}

// IsSourceFile reports whether path has one of the allow-listed source
// extensions.
func IsSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPrimarySourceFile reports whether path is a file in the primary language.
func IsPrimarySourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), PrimaryExtension)
}

// IsExcludedDir reports whether a directory with the given basename should be
// skipped during traversal.
func IsExcludedDir(basename string) bool {
	if excludedDirNames[basename] {
		return true
	}
	// Xcode bundles are directories with known suffixes.
	for _, suffix := range []string{".xcodeproj", ".xcworkspace", ".xcassets"} {
		if strings.HasSuffix(basename, suffix) {
			return true
		}
	}
	return false
}
