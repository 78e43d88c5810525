// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package checkconfig loads the configuration of a dependency check service.

Configuration follows the usual conventions:  a file named after the application is searched
for under /etc/<application>, $HOME/.<application>, and the working directory, environment
variables prefixed with the application name override it, and command line flags override both.
*/
package checkconfig
