// Package release resolves which sprint version to install.
//
// An explicit version is used as given (minus a leading "v"). A dry run
// without a version resolves to Latest without touching the network.
// Otherwise an ordered list of strategies is consulted and the first
// non-empty answer wins:
//
//  1. LatestRelease asks the GitHub API for the latest published release.
//  2. TagList lists the repository tags through the GitHub API.
//  3. RemoteTags enumerates tags on the git remote, like
//     "git ls-remote --tags".
//
// Strategy failures are logged at debug level and otherwise ignored. When
// every strategy comes back empty, Resolve fails with a *ResolutionError.
package release
