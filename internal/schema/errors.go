// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import "github.com/clargo/clargo/internal/clargoerr"

var errVersionEmpty = clargoerr.SchemaError("version string must not be empty")

func errVersionInvalid(value string, cause error) error {
	return clargoerr.SchemaError("version string %q is not valid semver: %v", value, cause)
}

func errNameEmpty(optionIndex int) error {
	return clargoerr.SchemaError("option %d declares no non-empty name", optionIndex)
}

func errNameInvalid(name string) error {
	return clargoerr.SchemaError("option name %q must not contain '=' or whitespace", name)
}

func errNameDuplicate(name string) error {
	return clargoerr.SchemaError("duplicate option name %q", name)
}

func errClusterLetterInvalid(letter string) error {
	return clargoerr.SchemaError("cluster letter %q must be a single character", letter)
}

func errClusterLetterDuplicate(letter string) error {
	return clargoerr.SchemaError("duplicate cluster letter %q", letter)
}

func errChoicesEmpty(name string) error {
	return clargoerr.SchemaError("option %s declares an empty choices enumeration", name)
}

func errPositionalMarkerEmpty(name string) error {
	return clargoerr.SchemaError("option %s is positional but declares an empty marker", name)
}

func errRequiredValueTypeMismatch(name string) error {
	return clargoerr.SchemaError("requires/requiredIf value for option %s does not match its declared type", name)
}

func errSelfReference(name string) error {
	return clargoerr.SchemaError("option %s requires itself, directly or transitively", name)
}

func errUnknownReqTarget(name, target string) error {
	return clargoerr.SchemaError("option %s requires unknown option %q", name, target)
}
