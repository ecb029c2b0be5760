package manager

import "regexp"

// PlatformPackagePattern matches requirement targets that name a runtime
// capability (language runtime, extension, system library) instead of an
// installable package. Kept identical to composer's platform repository.
const PlatformPackagePattern = `(?i)^(?:php(?:-64bit)?|hhvm|(?:ext|lib)-[^/]+)$`

var platformPackageRegexp = regexp.MustCompile(PlatformPackagePattern)

// IsPlatformRequirement reports whether a requirement target is a platform requirement
func IsPlatformRequirement(target string) bool {
	return platformPackageRegexp.MatchString(target)
}
